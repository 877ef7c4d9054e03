// Package tracker 实现在途报文跟踪
//
// Tracker 按消息序号保存已发送、尚未确认的出站报文。
// 每个序号的状态机为：
//
//	未跟踪 --Tx--> 在途 --匹配的确认/拒绝/捎带确认或显式移除--> 移除
//
// 移除后的序号不会自动回到在途；同一逻辑消息的重传要么使用
// 新序号，要么通过新的 Tx 调用重新插入（静默覆盖同号旧条目）。
//
// 移除操作是幂等的：确认可能晚到、重复到达，或条目已被本地
// 清理，这些都是不可靠链路协议中的正常竞争而非错误。
//
// totalTracked 单调递增，记录历史插入总数，移除不回退。
//
// Tracker 实现 PacketMonitor，作为观察者注册到 Collector 后，
// 跟踪簿记随每个收发事件自动进行。
package tracker
