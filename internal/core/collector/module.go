package collector

import (
	"context"

	"go.uber.org/fx"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Collector *Collector
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("collector",
		fx.Provide(ProvideCollector),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideCollector 提供 Collector 实例
//
// 每个 fx 应用只构造一个实例，取代按首次访问惰性构造的
// 单例模式（后者在并发首次访问下存在构造竞争）。
func ProvideCollector() Result {
	return Result{
		Collector: New(),
	}
}

// registerLifecycle 注册生命周期
func registerLifecycle(lc fx.Lifecycle, c *Collector) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("分发中枢启动", "monitors", c.Len())
			return nil
		},
		OnStop: func(_ context.Context) error {
			log.Info("分发中枢停止")
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
	Name = "collector"
	// Description 模块描述
	Description = "收发事件分发中枢，按注册顺序同步通知所有观察者"
)
