package storage

import (
	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
)

// objectPrefix 对象存储的键前缀
var objectPrefix = []byte("o/")

// ObjectStore 面向 Snapshotter 的对象存储
//
// 各内存存储在守护进程启动时恢复上次保存的快照、停止时保存
// 当前内容。持久化关闭时 ObjectStore 退化为空操作。
type ObjectStore struct {
	kv *KV
}

// NewObjectStore 创建对象存储
//
// eng 为 nil 时表示持久化关闭，所有操作静默跳过。
func NewObjectStore(eng pkgif.Engine) *ObjectStore {
	if eng == nil {
		return &ObjectStore{}
	}
	return &ObjectStore{kv: NewKV(eng, objectPrefix)}
}

// Enabled 返回对象存储是否可用
func (o *ObjectStore) Enabled() bool {
	return o.kv != nil
}

// Save 保存单个存储的快照
func (o *ObjectStore) Save(s pkgif.Snapshotter) error {
	if o.kv == nil {
		return nil
	}

	data, err := s.Snapshot()
	if err != nil {
		return err
	}
	return o.kv.Put([]byte(s.StoreName()), data)
}

// Load 恢复单个存储的快照
//
// 快照不存在（首次启动）不视为错误。
func (o *ObjectStore) Load(s pkgif.Snapshotter) error {
	if o.kv == nil {
		return nil
	}

	data, err := o.kv.Get([]byte(s.StoreName()))
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	return s.Restore(data)
}

// Delete 删除单个存储的快照
func (o *ObjectStore) Delete(name string) error {
	if o.kv == nil {
		return nil
	}
	return o.kv.Delete([]byte(name))
}

// SaveAll 保存所有存储的快照
//
// 单个存储保存失败只记录日志，不中断其余存储。
func (o *ObjectStore) SaveAll(stores []pkgif.Snapshotter) {
	if o.kv == nil {
		return
	}

	for _, s := range stores {
		if err := o.Save(s); err != nil {
			log.Warn("保存快照失败", "store", s.StoreName(), "error", err)
			continue
		}
		log.Debug("快照已保存", "store", s.StoreName())
	}
}

// LoadAll 恢复所有存储的快照
//
// 单个存储恢复失败只记录日志，不中断其余存储。
func (o *ObjectStore) LoadAll(stores []pkgif.Snapshotter) {
	if o.kv == nil {
		return
	}

	for _, s := range stores {
		if err := o.Load(s); err != nil {
			log.Warn("恢复快照失败", "store", s.StoreName(), "error", err)
			continue
		}
		log.Debug("快照已恢复", "store", s.StoreName())
	}
}
