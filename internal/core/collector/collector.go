package collector

import (
	"errors"
	"fmt"
	"sync"

	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
	loglib "github.com/packetd/go-packetd/pkg/lib/log"
	"github.com/packetd/go-packetd/pkg/types"
)

var log = loglib.Logger("core/collector")

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrInvalidMonitor 工厂产物不具备观察者能力
	ErrInvalidMonitor = errors.New("monitor does not implement PacketMonitor")
)

// ============================================================================
//                              Collector 实现
// ============================================================================

// Collector 收发事件分发中枢
type Collector struct {
	// mu 仅保护注册表，分发在快照上进行
	mu        sync.Mutex
	factories []pkgif.MonitorFactory
}

// New 创建分发中枢
func New() *Collector {
	return &Collector{}
}

// Register 追加观察者工厂
//
// 注册时不做校验，不去重；能力检查推迟到分发边界。
func (c *Collector) Register(f pkgif.MonitorFactory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories = append(c.factories, f)
	log.Debug("注册观察者工厂", "count", len(c.factories))
}

// Rx 分发一次接收事件
//
// 按注册顺序实例化各工厂并调用其 Rx。第一个不合格的工厂
// 使本次分发立即失败（之前的观察者已经执行）。
func (c *Collector) Rx(p *types.Packet) error {
	return c.dispatch(p, func(m pkgif.PacketMonitor) { m.Rx(p) })
}

// Tx 分发一次发送事件
func (c *Collector) Tx(p *types.Packet) error {
	return c.dispatch(p, func(m pkgif.PacketMonitor) { m.Tx(p) })
}

// Len 返回已注册工厂数量
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.factories)
}

// dispatch 在注册表快照上顺序分发
func (c *Collector) dispatch(p *types.Packet, call func(pkgif.PacketMonitor)) error {
	for _, f := range c.snapshot() {
		inst := f()
		m, ok := inst.(pkgif.PacketMonitor)
		if !ok {
			log.Error("观察者能力检查失败", "got", fmt.Sprintf("%T", inst), "packet", p.Key)
			return fmt.Errorf("%w: got %T", ErrInvalidMonitor, inst)
		}
		call(m)
	}
	return nil
}

// snapshot 复制当前工厂列表
//
// 分发时不持有注册锁，观察者回调进各存储不会造成重入死锁。
func (c *Collector) snapshot() []pkgif.MonitorFactory {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]pkgif.MonitorFactory, len(c.factories))
	copy(out, c.factories)
	return out
}
