package packetd

import "errors"

// Daemon 生命周期错误定义
var (
	// ErrDaemonClosed 守护进程已关闭
	ErrDaemonClosed = errors.New("packetd: daemon closed")

	// ErrAlreadyStarted 守护进程已启动
	ErrAlreadyStarted = errors.New("packetd: daemon already started")

	// ErrNotStarted 守护进程尚未启动
	ErrNotStarted = errors.New("packetd: daemon not started")

	// ErrNilPacket 报文为空
	ErrNilPacket = errors.New("packetd: nil packet")
)
