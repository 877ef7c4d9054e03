package packetd

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/packetd/go-packetd/config"
	"github.com/packetd/go-packetd/internal/core/collector"
	"github.com/packetd/go-packetd/internal/core/packetstore"
	"github.com/packetd/go-packetd/internal/core/seen"
	"github.com/packetd/go-packetd/internal/core/storage"
	"github.com/packetd/go-packetd/internal/core/tracker"
	"github.com/packetd/go-packetd/internal/registry"
)

// buildFxApp 构建 Fx 应用
//
// 组装所有子系统模块。每个子系统在应用装配期恰好构造一个
// 实例，依赖通过构造函数注入，不存在进程级单例。
//
// 加载顺序（按依赖）：
//  1. 持久化层: Storage（引擎 + 对象存储）
//  2. 存储层: SeenList → PacketStore → Collector → Tracker
//  3. 外围服务: Registry 心跳
func buildFxApp(cfg *config.Config, d *Daemon) (*fx.App, error) {
	// 配置验证（前置）
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		// 配置注入
		fx.Supply(cfg),
		fx.Supply(registry.Software(SoftwareID())),

		// 持久化层（对象存储收集各存储的快照能力）
		storage.Module(),

		// 存储层
		seen.Module(),
		packetstore.Module(),
		collector.Module(),
		tracker.Module(),

		// 外围服务（未启用时自行保持停止）
		registry.Module(),

		// Daemon 组件注入
		fx.Invoke(injectDaemonComponents(d)),

		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
		fx.NopLogger,
	}

	return fx.New(modules...), nil
}

// daemonInjectParams Daemon 组件注入参数
type daemonInjectParams struct {
	fx.In

	Collector *collector.Collector
	Store     *packetstore.Store
	Tracker   *tracker.Tracker
	Seen      *seen.List
}

// injectDaemonComponents 把装配好的组件交给 Daemon 门面
func injectDaemonComponents(d *Daemon) func(daemonInjectParams) {
	return func(p daemonInjectParams) {
		d.collector = p.Collector
		d.store = p.Store
		d.tracker = p.Tracker
		d.seen = p.Seen
	}
}
