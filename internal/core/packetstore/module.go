package packetstore

import (
	"context"

	"go.uber.org/fx"

	"github.com/packetd/go-packetd/config"
	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 配置
	Config *config.Config

	// Seen 出现跟踪协作方（可选）
	Seen pkgif.SeenTracker `optional:"true"`
}

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	Store *Store

	// Snapshotter 注入持久化组，由对象存储统一加载/保存
	Snapshotter pkgif.Snapshotter `group:"snapshotters"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("packetstore",
		fx.Provide(ProvideStore),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideStore 提供报文缓存实例
func ProvideStore(input ModuleInput) (ModuleOutput, error) {
	store, err := New(input.Config.Store.MaxPackets, input.Seen)
	if err != nil {
		return ModuleOutput{}, err
	}
	return ModuleOutput{Store: store, Snapshotter: store}, nil
}

// registerLifecycle 注册生命周期
func registerLifecycle(lc fx.Lifecycle, s *Store) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("报文缓存启动", "maxlen", s.MaxLen(), "len", s.Len())
			return nil
		},
		OnStop: func(_ context.Context) error {
			log.Info("报文缓存停止", "len", s.Len())
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
	Name = "packetstore"
	// Description 模块描述
	Description = "有界报文缓存模块，提供刷新式 FIFO 淘汰与按类别收发统计"
)
