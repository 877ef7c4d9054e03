// Package interfaces - Storage 存储引擎接口
//
// 本文件定义 packetd 持久化层的公共接口。
// 内部使用 BadgerDB 实现，用户可以提供自定义存储后端。
package interfaces

// Engine 存储引擎基础接口
//
// 提供键值存储的基本操作。
//
// 线程安全：实现必须保证所有方法的线程安全性。
type Engine interface {
	// Get 获取指定键的值
	//
	// 返回:
	//   - []byte: 值的副本（调用者可以安全修改）
	//   - error: 键不存在时返回 ErrKeyNotFound，其他错误表示存储故障
	Get(key []byte) ([]byte, error)

	// Put 设置键值对
	Put(key, value []byte) error

	// Delete 删除指定键（键不存在时不报错）
	Delete(key []byte) error

	// Has 检查键是否存在
	Has(key []byte) (bool, error)

	// Close 关闭引擎并释放资源
	Close() error
}

// Snapshotter 可持久化存储能力
//
// 各内存存储（报文缓存、在途跟踪、出现列表）实现本接口后，
// 即可由对象存储在启动时加载、停止时保存其全部内容。
// 持久化的单位是整个键值映射内容，格式由实现自行决定。
type Snapshotter interface {
	// StoreName 返回持久化键名（进程内唯一）
	StoreName() string

	// Snapshot 序列化当前全部内容
	Snapshot() ([]byte, error)

	// Restore 从序列化内容恢复（替换当前全部内容）
	Restore(data []byte) error
}
