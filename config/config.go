// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Callsign = "N0CALL"
//	cfg.Registry.Enabled = true
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config 是 packetd 的完整配置结构
//
// 该结构体嵌入了所有组件的子配置，提供统一的配置接口。
// 配置按照功能模块组织：
//   - Callsign: 本机电台呼号
//   - Store: 报文缓存（容量等）
//   - Storage: 持久化存储（BadgerDB）
//   - Registry: 外部注册服务心跳
type Config struct {
	// Callsign 本机电台呼号
	Callsign string `json:"callsign"`

	// Store 报文缓存配置
	Store StoreConfig `json:"store"`

	// Storage 持久化存储配置
	Storage StorageConfig `json:"storage"`

	// Registry 注册服务心跳配置
	Registry RegistryConfig `json:"registry"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Store:    DefaultStoreConfig(),
		Storage:  DefaultStorageConfig(),
		Registry: DefaultRegistryConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c.Callsign == "" {
		return fmt.Errorf("config: callsign cannot be empty")
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Registry.Validate(); err != nil {
		return err
	}
	return nil
}

// FromJSON 从 JSON 数据解析配置
//
// 未出现的字段保持默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse failed: %w", err)
	}
	return cfg, nil
}

// ToJSON 序列化配置为 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// LoadFile 从文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s failed: %w", path, err)
	}
	return FromJSON(data)
}

// SaveFile 保存配置到文件
func (c *Config) SaveFile(path string) error {
	data, err := c.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
