package storage

import (
	"context"

	"go.uber.org/fx"

	"github.com/packetd/go-packetd/config"
	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// Params 定义模块输入依赖
type Params struct {
	fx.In

	// Config 配置
	Config *config.Config
}

// Result 定义模块输出服务
type Result struct {
	fx.Out

	// Objects 对象存储（持久化关闭时为空操作实现）
	Objects *ObjectStore

	// Engine 存储引擎（持久化关闭时为 nil）
	Engine *Engine
}

// lifecycleInput 生命周期钩子的依赖
type lifecycleInput struct {
	fx.In

	Lifecycle fx.Lifecycle
	Objects   *ObjectStore
	Engine    *Engine `optional:"true"`

	// Snapshotters 各内存存储注入的可持久化能力
	Snapshotters []pkgif.Snapshotter `group:"snapshotters"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideStorage),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideStorage 提供存储引擎与对象存储
//
// 持久化关闭时不打开数据库，对象存储退化为空操作。
func ProvideStorage(p Params) (Result, error) {
	if !p.Config.Storage.Enabled {
		log.Info("持久化未启用，存储只存在于内存中")
		return Result{Objects: NewObjectStore(nil)}, nil
	}

	eng, err := NewEngine(p.Config.Storage)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Objects: NewObjectStore(eng),
		Engine:  eng,
	}, nil
}

// registerLifecycle 注册生命周期
//
// 启动：拉起引擎后台任务并恢复所有快照。
// 停止：保存所有快照后关闭引擎。
func registerLifecycle(in lifecycleInput) {
	in.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if in.Engine != nil {
				if err := in.Engine.Start(); err != nil {
					log.Error("存储引擎启动失败", "error", err)
					return err
				}
			}
			in.Objects.LoadAll(in.Snapshotters)
			log.Info("持久化层启动", "stores", len(in.Snapshotters), "enabled", in.Objects.Enabled())
			return nil
		},
		OnStop: func(_ context.Context) error {
			in.Objects.SaveAll(in.Snapshotters)
			if in.Engine != nil {
				if err := in.Engine.Close(); err != nil {
					log.Warn("存储引擎关闭失败", "error", err)
					return err
				}
			}
			log.Info("持久化层停止")
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
	Name = "storage"
	// Description 模块描述
	Description = "基于 BadgerDB 的持久化模块，负责各内存存储的快照加载与保存"
)
