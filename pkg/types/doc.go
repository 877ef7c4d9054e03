// Package types 定义 packetd 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 packetd 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 职能
//
// pkg/types 的职能是定义 **Go 内部数据结构**：
//   - 模块间数据传递（Packet 记录）
//   - API 参数/返回值
//   - 统计快照结构
//
// 注意：本包不负责无线电帧的解析与构造，
// Packet 是已经解码后的内存记录，wire format 属于传输层。
//
// # 文件组织
//
//   - packet.go - Packet 记录、PacketKind 枚举、序号/键辅助函数
package types
