// Package packetd 实现分组无线电消息守护进程的可靠性内核
//
// packetd 维护消息流量的三个内存存储，并在其上提供观察者
// 分发与持久化能力：
//
//   - Collector: 进程级收发事件分发中枢（观察者工厂注册表）
//   - PacketStore: 最近报文的有界缓存（刷新式 FIFO 淘汰）
//   - PacketTracker: 在途消息跟踪（确认/拒绝驱动移除）
//
// 辅助子系统：
//
//   - SeenList: 各电台最近出现时间与报文计数
//   - Storage: BadgerDB 持久化（启动加载、停止保存各存储快照）
//   - Registry: 对外注册服务的周期心跳
//
// # 快速开始
//
//	cfg := config.NewConfig()
//	cfg.Callsign = "N0CALL"
//
//	d, err := packetd.New(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := d.Start(ctx); err != nil {
//	    return err
//	}
//	defer d.Stop(context.Background())
//
//	// 无线电层把每个收到的报文交给 Rx、每个将发送的报文交给 Tx
//	d.Rx(pkt)
//	d.Tx(pkt)
//
// 本包不实现无线电传输与线格式解析；Packet 由上层解码后交入。
package packetd
