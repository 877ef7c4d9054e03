// Package config 提供统一的配置管理
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// StorageConfig 持久化存储配置
//
// 配置 packetd 的数据存储目录。报文缓存、在途跟踪和出现列表
// 统一保存在 BadgerDB 中，通过 Key 前缀隔离。
//
// 数据目录结构：
//
//	${DataDir}/
//	└── packetd.db/         # BadgerDB 主数据库
//	    ├── 000001.vlog     # Value Log
//	    ├── 000001.sst      # SSTable
//	    └── MANIFEST        # 数据库元信息
type StorageConfig struct {
	// Enabled 是否启用持久化
	// 关闭时各存储只存在于内存中
	// 默认值: true
	Enabled bool `json:"enabled"`

	// DataDir 数据目录路径
	// 默认值: "./data"
	DataDir string `json:"data_dir"`

	// SyncWrites 是否同步写盘
	// 默认值: false
	SyncWrites bool `json:"sync_writes"`

	// GCInterval 值日志垃圾回收间隔（0 表示关闭 GC）
	// 默认值: 10m
	GCInterval Duration `json:"gc_interval"`
}

// DefaultStorageConfig 返回默认的存储配置
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Enabled:    true,
		DataDir:    "./data",
		SyncWrites: false,
		GCInterval: Duration(10 * time.Minute),
	}
}

// Validate 验证存储配置的有效性
func (c *StorageConfig) Validate() error {
	if c.Enabled && c.DataDir == "" {
		return fmt.Errorf("storage: data_dir cannot be empty")
	}
	return nil
}

// DBPath 返回 BadgerDB 数据库路径
func (c *StorageConfig) DBPath() string {
	return filepath.Join(c.DataDir, "packetd.db")
}

// WithDataDir 设置数据目录
func (c StorageConfig) WithDataDir(dir string) StorageConfig {
	c.DataDir = dir
	return c
}
