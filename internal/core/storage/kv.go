package storage

import (
	"encoding/json"

	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
)

// KV 带前缀隔离的键值存储
//
// KV 封装底层存储引擎，为所有键自动添加前缀，
// 使多个组件可以无冲突地共享同一引擎。
type KV struct {
	engine pkgif.Engine
	prefix []byte
}

// NewKV 创建带前缀的键值存储
func NewKV(eng pkgif.Engine, prefix []byte) *KV {
	return &KV{
		engine: eng,
		prefix: prefix,
	}
}

// prefixKey 为键添加前缀
func (s *KV) prefixKey(key []byte) []byte {
	if len(s.prefix) == 0 {
		return key
	}
	prefixed := make([]byte, len(s.prefix)+len(key))
	copy(prefixed, s.prefix)
	copy(prefixed[len(s.prefix):], key)
	return prefixed
}

// Get 获取指定键的值
func (s *KV) Get(key []byte) ([]byte, error) {
	return s.engine.Get(s.prefixKey(key))
}

// Put 设置键值对
func (s *KV) Put(key, value []byte) error {
	return s.engine.Put(s.prefixKey(key), value)
}

// Delete 删除指定键
func (s *KV) Delete(key []byte) error {
	return s.engine.Delete(s.prefixKey(key))
}

// Has 检查键是否存在
func (s *KV) Has(key []byte) (bool, error) {
	return s.engine.Has(s.prefixKey(key))
}

// GetJSON 获取并反序列化 JSON 值
func (s *KV) GetJSON(key []byte, v interface{}) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// PutJSON 序列化并存储 JSON 值
func (s *KV) PutJSON(key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, data)
}
