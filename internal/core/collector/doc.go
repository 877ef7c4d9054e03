// Package collector 实现报文收发事件的分发中枢
//
// Collector 持有观察者工厂的注册表，在每个接收（Rx）和发送（Tx）
// 事件上按注册顺序实例化各工厂并同步分发事件。
//
// # 分发契约
//
//   - 注册顺序即分发顺序，同一工厂可重复注册（产生重复分发，
//     属于文档化行为而非缺陷）
//   - 分发在调用方线程上同步执行，不并行、不排队，
//     慢观察者会拖慢调用方
//   - 工厂产物不具备观察者能力时，本次分发立即失败并返回
//     ErrInvalidMonitor，不再继续后面的观察者；之前的观察者
//     已经执行。观察者注册属于启动期配置，配置错误应该被
//     大声暴露而不是静默跳过
//
// # 锁约定
//
// Collector 的锁只保护注册表本身。分发在注册表快照上进行，
// 不持有任何锁，观察者可以安全地回调进报文缓存或在途跟踪。
package collector
