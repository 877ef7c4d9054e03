package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
//                              PacketKind - 报文类别
// ============================================================================

// PacketKind 报文类别
//
// 用于按类别统计收发计数，以及确认跟踪逻辑的分支判断。
type PacketKind int

const (
	// KindUnknown 未知报文
	KindUnknown PacketKind = iota
	// KindMessage 普通消息报文
	KindMessage
	// KindAck 确认报文
	KindAck
	// KindReject 拒绝报文
	KindReject
	// KindBeacon 信标报文
	KindBeacon
	// KindStatus 状态报文
	KindStatus
)

// String 返回报文类别的字符串表示
//
// 该字符串同时作为按类别统计的键。
func (k PacketKind) String() string {
	switch k {
	case KindMessage:
		return "MessagePacket"
	case KindAck:
		return "AckPacket"
	case KindReject:
		return "RejectPacket"
	case KindBeacon:
		return "BeaconPacket"
	case KindStatus:
		return "StatusPacket"
	default:
		return "UnknownPacket"
	}
}

// ============================================================================
//                              Packet - 报文记录
// ============================================================================

// Packet 已解码的报文记录
//
// Packet 由无线电收发层产生并消费，本核心只读取其标识字段，
// 并在首次发送时重置 SendCount。RetryCount 由外部重试逻辑维护。
type Packet struct {
	// Key 报文唯一键，生命周期内稳定
	Key string `json:"key"`

	// Kind 报文类别
	Kind PacketKind `json:"kind"`

	// FromCall 发送方呼号
	FromCall string `json:"from_call"`

	// ToCall 接收方呼号
	ToCall string `json:"to_call"`

	// MsgNo 消息序号（由发送方分配，用于确认匹配）
	//
	// 对 Ack/Reject 报文，MsgNo 即被确认/拒绝的原始消息序号。
	MsgNo string `json:"msg_no"`

	// AckMsgNo 捎带确认引用的消息序号（可为空）
	AckMsgNo string `json:"ack_msg_no,omitempty"`

	// SendCount 已发送次数（首次发送时由跟踪器清零）
	SendCount int `json:"send_count"`

	// RetryCount 重试预算（由外部重试逻辑维护，此处只读）
	RetryCount int `json:"retry_count"`

	// LastSendTime 最近一次发送时间
	LastSendTime time.Time `json:"last_send_time"`

	// Raw 序列化后的原始形式（此处只读）
	Raw string `json:"raw"`
}

// NewPacket 创建报文记录并派生唯一键
//
// 键格式为 from:to:msgNo；缺少消息序号时退化为随机 UUID，
// 保证键在报文生命周期内稳定且唯一。
func NewPacket(kind PacketKind, fromCall, toCall, msgNo string) *Packet {
	p := &Packet{
		Kind:     kind,
		FromCall: fromCall,
		ToCall:   toCall,
		MsgNo:    msgNo,
	}
	p.Key = p.deriveKey()
	return p
}

// deriveKey 派生报文唯一键
func (p *Packet) deriveKey() string {
	if p.MsgNo == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s:%s:%s", p.FromCall, p.ToCall, p.MsgNo)
}

// EnsureKey 补全缺失的唯一键
//
// 从外部构造（如 JSON 反序列化）的报文可能没有键，
// 进入存储前调用本方法补全。
func (p *Packet) EnsureKey() {
	if p.Key == "" {
		p.Key = p.deriveKey()
	}
}

// TypeName 返回按类别统计使用的类型名
func (p *Packet) TypeName() string {
	return p.Kind.String()
}

// String 返回报文的简短描述
func (p *Packet) String() string {
	return fmt.Sprintf("%s{%s -> %s, msgNo=%s}", p.TypeName(), p.FromCall, p.ToCall, p.MsgNo)
}

// ============================================================================
//                              序号辅助函数
// ============================================================================

// NewMsgNo 生成新的消息序号
//
// 取 UUID 的前 8 个字符，在单个电台的在途窗口内足够唯一。
func NewMsgNo() string {
	id := uuid.NewString()
	return id[:8]
}
