// Package interfaces - SeenTracker 电台出现跟踪接口
package interfaces

import (
	"github.com/packetd/go-packetd/pkg/types"
)

// SeenTracker 电台最近出现跟踪
//
// PacketStore 在每次 rx/tx 后调用 UpdateSeen 通知报文发送方
// 刚刚被观测到。实现必须非阻塞：调用发生在存储锁之外，
// 但仍在收发线程上。
type SeenTracker interface {
	// UpdateSeen 记录报文发送方此刻被观测到
	UpdateSeen(p *types.Packet)
}
