// Package config 提供统一的配置管理
package config

import (
	"fmt"
)

// StoreConfig 报文缓存配置
//
// 报文缓存保存最近看到的报文，达到容量上限后
// 按最久未刷新的顺序淘汰。
type StoreConfig struct {
	// MaxPackets 缓存容量上限
	// 默认值: 100
	MaxPackets int `json:"max_packets"`
}

// DefaultStoreConfig 返回默认的报文缓存配置
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		MaxPackets: 100,
	}
}

// Validate 验证报文缓存配置的有效性
func (c *StoreConfig) Validate() error {
	if c.MaxPackets <= 0 {
		return fmt.Errorf("store: max_packets must be positive, got %d", c.MaxPackets)
	}
	return nil
}

// WithMaxPackets 设置缓存容量上限
func (c StoreConfig) WithMaxPackets(n int) StoreConfig {
	c.MaxPackets = n
	return c
}
