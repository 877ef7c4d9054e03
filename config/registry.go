// Package config 提供统一的配置管理
package config

import (
	"fmt"
	"net/url"
	"time"
)

// RegistryConfig 注册服务心跳配置
//
// 启用后，daemon 周期性向外部注册服务上报自身身份与状态。
// 上报失败只记录日志，不影响收发主流程。
type RegistryConfig struct {
	// Enabled 是否启用注册服务心跳
	// 默认值: false
	Enabled bool `json:"enabled"`

	// RegistryURL 注册服务基础地址
	// 心跳 POST 到 ${RegistryURL}/api/v1/register
	RegistryURL string `json:"registry_url"`

	// Frequency 上报周期
	// 默认值: 1h
	Frequency Duration `json:"frequency"`

	// Description 服务描述（随心跳上报）
	Description string `json:"description"`

	// ServiceWebsite 服务网站（随心跳上报）
	ServiceWebsite string `json:"service_website"`
}

// DefaultRegistryConfig 返回默认的注册服务配置
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		Enabled:   false,
		Frequency: Duration(time.Hour),
	}
}

// Validate 验证注册服务配置的有效性
func (c *RegistryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RegistryURL == "" {
		return fmt.Errorf("registry: registry_url cannot be empty when enabled")
	}
	if _, err := url.ParseRequestURI(c.RegistryURL); err != nil {
		return fmt.Errorf("registry: invalid registry_url %q: %w", c.RegistryURL, err)
	}
	if c.Frequency.Duration() <= 0 {
		return fmt.Errorf("registry: frequency must be positive")
	}
	return nil
}

// WithRegistryURL 设置注册服务地址
func (c RegistryConfig) WithRegistryURL(u string) RegistryConfig {
	c.RegistryURL = u
	return c
}
