package seen

import (
	"context"

	"go.uber.org/fx"

	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	List *List

	// Seen 以接口形式暴露给报文缓存
	Seen pkgif.SeenTracker

	// Snapshotter 注入持久化组，由对象存储统一加载/保存
	Snapshotter pkgif.Snapshotter `group:"snapshotters"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("seen",
		fx.Provide(ProvideList),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideList 提供出现列表实例
func ProvideList() Result {
	l := New()
	return Result{
		List:        l,
		Seen:        l,
		Snapshotter: l,
	}
}

// registerLifecycle 注册生命周期
func registerLifecycle(lc fx.Lifecycle, l *List) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("出现列表启动", "stations", l.Len())
			return nil
		},
		OnStop: func(_ context.Context) error {
			log.Info("出现列表停止", "stations", l.Len())
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
	Name = "seen"
	// Description 模块描述
	Description = "电台出现跟踪模块，记录每个呼号的最近观测时间与报文数"
)
