// Package interfaces - PacketMonitor 报文观察者接口
package interfaces

import (
	"github.com/packetd/go-packetd/pkg/types"
)

// PacketMonitor 报文观察者能力
//
// 实现本接口的组件会在每个收发事件上被 Collector 同步调用。
// 两个方法都在调用方线程上执行，不得长时间阻塞。
type PacketMonitor interface {
	// Rx 网络收到报文时调用
	Rx(p *types.Packet)

	// Tx 报文即将发出时调用
	Tx(p *types.Packet)
}

// MonitorFactory 观察者工厂
//
// Collector 对每个事件调用工厂取得观察者实例，再做能力检查。
// 返回值声明为 any 而非 PacketMonitor：能力检查保留在分发边界，
// 错误注册的工厂在第一次分发时被大声暴露，而不是静默跳过。
type MonitorFactory func() any
