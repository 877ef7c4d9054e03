package registry

import "errors"

// 注册服务错误定义
var (
	// ErrServiceClosed 心跳已关闭
	ErrServiceClosed = errors.New("registry: service closed")
)
