// Package interfaces 定义 packetd 各模块间的公共接口
//
// 本包只依赖 pkg/types，供 internal 各子系统与外部协作方实现。
//
// # 文件组织
//
//   - monitor.go - PacketMonitor 报文观察者能力与工厂
//   - seen.go    - SeenTracker 电台最近出现跟踪
//   - storage.go - Engine 存储引擎、Snapshotter 可持久化存储
package interfaces
