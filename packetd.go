package packetd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/packetd/go-packetd/config"
	"github.com/packetd/go-packetd/internal/core/collector"
	"github.com/packetd/go-packetd/internal/core/packetstore"
	"github.com/packetd/go-packetd/internal/core/seen"
	"github.com/packetd/go-packetd/internal/core/tracker"
	"github.com/packetd/go-packetd/pkg/lib/log"
	"github.com/packetd/go-packetd/pkg/types"
)

var logger = log.Logger("packetd")

// ============================================================================
//                              版本信息
// ============================================================================

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "packetd " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// SoftwareID 返回上报给注册服务的软件标识
func SoftwareID() string {
	return "packetd version " + Version + " https://github.com/packetd/go-packetd"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ============================================================================
//                              Daemon 门面
// ============================================================================

// startTimeout 启动超时（Fx App Start）
const startTimeout = 30 * time.Second

// stopTimeout 停止超时（Fx App Stop）
const stopTimeout = 30 * time.Second

// Daemon 守护进程门面
//
// 聚合可靠性内核的全部子系统，对无线电层暴露 Rx/Tx 两个
// 入口。生命周期为一次性：Start 之后 Stop，停止后不可重启。
type Daemon struct {
	cfg *config.Config
	app *fx.App

	mu      sync.Mutex
	started bool
	closed  bool

	// 注入的组件
	collector *collector.Collector
	store     *packetstore.Store
	tracker   *tracker.Tracker
	seen      *seen.List
}

// New 创建守护进程
//
// cfg 为 nil 时使用默认配置。配置验证失败返回错误。
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	d := &Daemon{cfg: cfg}

	app, err := buildFxApp(cfg, d)
	if err != nil {
		return nil, err
	}
	d.app = app

	return d, nil
}

// Start 启动守护进程
//
// 启动所有子系统：恢复持久化快照、拉起注册心跳、把跟踪器
// 注册为分发中枢的观察者。重复启动返回 ErrAlreadyStarted。
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDaemonClosed
	}
	if d.started {
		return ErrAlreadyStarted
	}

	logger.Info("正在启动守护进程", "version", Version, "callsign", d.cfg.Callsign)

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := d.app.Start(startCtx); err != nil {
		logger.Error("守护进程启动失败", "error", err)
		return fmt.Errorf("start failed: %w", err)
	}

	d.started = true
	logger.Info("守护进程已启动")
	return nil
}

// Stop 停止守护进程
//
// 保存各存储快照并关闭所有子系统。幂等：未启动或已停止时
// 返回 nil。
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		d.closed = true
		return nil
	}

	logger.Info("正在停止守护进程")

	stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()

	err := d.app.Stop(stopCtx)
	d.started = false
	d.closed = true

	if err != nil {
		logger.Error("守护进程停止失败", "error", err)
		return fmt.Errorf("stop failed: %w", err)
	}

	logger.Info("守护进程已停止")
	return nil
}

// ============================================================================
//                              收发入口
// ============================================================================

// Rx 处理一个解码后的入站报文
//
// 先更新主存储（报文缓存），再分发给所有注册观察者。
// 无线电层在自己的收包线程上同步调用。
func (d *Daemon) Rx(p *types.Packet) error {
	if p == nil {
		return ErrNilPacket
	}
	if !d.Running() {
		return ErrNotStarted
	}

	p.EnsureKey()
	d.store.Rx(p)
	return d.collector.Rx(p)
}

// Tx 处理一个即将发送的出站报文
func (d *Daemon) Tx(p *types.Packet) error {
	if p == nil {
		return ErrNilPacket
	}
	if !d.Running() {
		return ErrNotStarted
	}

	p.EnsureKey()
	d.store.Tx(p)
	return d.collector.Tx(p)
}

// Running 返回守护进程是否正在运行
func (d *Daemon) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started && !d.closed
}

// ============================================================================
//                              组件访问
// ============================================================================

// Config 返回守护进程配置
func (d *Daemon) Config() *config.Config {
	return d.cfg
}

// Collector 返回收发事件分发中枢
func (d *Daemon) Collector() *collector.Collector {
	return d.collector
}

// Store 返回报文缓存
func (d *Daemon) Store() *packetstore.Store {
	return d.store
}

// Tracker 返回在途跟踪器
func (d *Daemon) Tracker() *tracker.Tracker {
	return d.tracker
}

// Seen 返回电台出现列表
func (d *Daemon) Seen() *seen.List {
	return d.seen
}
