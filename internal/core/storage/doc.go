// Package storage 实现 packetd 的持久化层
//
// 持久化层由三部分组成：
//
//   - Engine: 基于 BadgerDB 的键值存储引擎（实现 interfaces.Engine）
//   - KV: 带前缀隔离的键值存储抽象，各存储使用不同前缀共享同一引擎
//   - ObjectStore: 面向 Snapshotter 的对象存储，启动时加载、停止时保存
//
// # 键空间设计
//
// packetd 使用以下前缀约定：
//
//   - o/ - 对象存储（各内存存储的快照，键为 StoreName）
//
// # 故障策略
//
// 持久化是尽力而为的辅助能力：加载或保存单个存储失败时记录
// 日志并继续处理其余存储，绝不让持久化故障阻断守护进程的
// 启动或停止。首次启动时快照键不存在不视为错误。
package storage
