package registry

import (
	"context"

	"go.uber.org/fx"

	"github.com/packetd/go-packetd/config"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// Params 定义模块输入依赖
type Params struct {
	fx.In

	// Config 配置
	Config *config.Config

	// Software 软件标识（由装配层提供）
	Software Software
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("registry",
		fx.Provide(ProvideService),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideService 提供注册服务心跳实例
func ProvideService(p Params) *Service {
	return New(p.Config.Registry, p.Config.Callsign, p.Software)
}

// registerLifecycle 注册生命周期
func registerLifecycle(lc fx.Lifecycle, s *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start(ctx)
		},
		OnStop: func(_ context.Context) error {
			return s.Close()
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
	Name = "registry"
	// Description 模块描述
	Description = "注册服务心跳模块，周期性向外部目录上报本站信息"
)
