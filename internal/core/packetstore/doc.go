// Package packetstore 实现最近报文的有界缓存
//
// Store 按报文键保存最近看到的报文，并维护总量与按类别的
// 收发计数。缓存采用"刷新式 FIFO"淘汰：
//
//  1. 键已存在：移到最新位置，大小不变（重复流量免费续期）
//  2. 已达容量：先淘汰最久未刷新的条目，再插入新报文
//  3. 否则：直接插入最新位置
//
// 查找（Find）不刷新位置，只有插入类操作（Rx/Tx/Add）续期。
// 内存严格有界于容量 C，计数器单调递增、与淘汰无关。
//
// # 锁约定
//
// 整个公共接口由一把互斥锁串行化（读操作也不例外，下游依赖
// 统计读取的完全串行语义）。对外部协作方的调用（出现跟踪、
// 持久化）发生在临界区之外。
package packetstore
