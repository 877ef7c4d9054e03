package tracker

import (
	"context"

	"go.uber.org/fx"

	"github.com/packetd/go-packetd/internal/core/collector"
	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Tracker *Tracker

	// Snapshotter 注入持久化组，由对象存储统一加载/保存
	Snapshotter pkgif.Snapshotter `group:"snapshotters"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("tracker",
		fx.Provide(ProvideTracker),
		fx.Invoke(registerWithCollector),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideTracker 提供在途跟踪器实例
func ProvideTracker() Result {
	t := New()
	return Result{
		Tracker:     t,
		Snapshotter: t,
	}
}

// registerWithCollector 把跟踪器注册为收发事件的观察者
//
// 注册后，每个经过分发中枢的报文都会自动进行跟踪簿记。
// 工厂返回共享实例：分发契约要求按事件调用工厂，
// 而跟踪状态必须全进程唯一。
func registerWithCollector(c *collector.Collector, t *Tracker) {
	c.Register(func() any { return t })
}

// registerLifecycle 注册生命周期
func registerLifecycle(lc fx.Lifecycle, t *Tracker) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("在途跟踪启动", "inflight", t.Len())
			return nil
		},
		OnStop: func(_ context.Context) error {
			log.Info("在途跟踪停止", "inflight", t.Len(), "totalTracked", t.TotalTracked())
			return nil
		},
	})
}

// ============================================================================
//                              模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "tracker"
	// Description 模块描述
	Description = "在途报文跟踪模块，确认/拒绝/捎带确认驱动条目移除"
)
