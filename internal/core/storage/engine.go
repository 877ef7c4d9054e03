package storage

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/packetd/go-packetd/config"
	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
	loglib "github.com/packetd/go-packetd/pkg/lib/log"
)

var log = loglib.Logger("core/storage")

// 编译期接口检查
var _ pkgif.Engine = (*Engine)(nil)

// gcDiscardRatio 值日志 GC 的回收阈值
const gcDiscardRatio = 0.5

// Engine 基于 BadgerDB 的存储引擎
//
// 所有方法线程安全。引擎关闭后所有操作返回 ErrClosed。
type Engine struct {
	db     *badger.DB
	closed atomic.Bool

	// 后台垃圾回收
	gcInterval time.Duration
	gcCtx      context.Context
	gcCancel   context.CancelFunc
	gcWg       sync.WaitGroup
}

// NewEngine 打开指定目录下的 BadgerDB 并创建存储引擎
func NewEngine(cfg config.StorageConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 确保数据目录存在
	if err := os.MkdirAll(cfg.DBPath(), 0o755); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(cfg.DBPath()).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Error("打开数据库失败", "path", cfg.DBPath(), "error", err)
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	e := &Engine{
		db:         db,
		gcInterval: cfg.GCInterval.Duration(),
		gcCtx:      ctx,
		gcCancel:   cancel,
	}

	log.Debug("存储引擎创建成功", "path", cfg.DBPath())
	return e, nil
}

// Start 启动存储引擎的后台任务
func (e *Engine) Start() error {
	if e.closed.Load() {
		return ErrClosed
	}

	if e.gcInterval > 0 {
		e.startGC()
	}

	return nil
}

// startGC 启动值日志垃圾回收后台任务
func (e *Engine) startGC() {
	e.gcWg.Add(1)
	go func() {
		defer e.gcWg.Done()

		ticker := time.NewTicker(e.gcInterval)
		defer ticker.Stop()

		for {
			select {
			case <-e.gcCtx.Done():
				return
			case <-ticker.C:
				e.runGC()
			}
		}
	}()
}

// runGC 执行一轮垃圾回收，直到没有更多可回收空间
func (e *Engine) runGC() {
	if e.closed.Load() {
		return
	}

	for {
		if err := e.db.RunValueLogGC(gcDiscardRatio); err != nil {
			break
		}
	}
}

// Get 获取指定键的值
func (e *Engine) Get(key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put 设置键值对
func (e *Engine) Put(key, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}

	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete 删除指定键（键不存在时不报错）
func (e *Engine) Delete(key []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}

	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Has 检查键是否存在
func (e *Engine) Has(key []byte) (bool, error) {
	if e.closed.Load() {
		return false, ErrClosed
	}
	if len(key) == 0 {
		return false, ErrEmptyKey
	}

	var exists bool
	err := e.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			exists = true
			return nil
		}
		if err == badger.ErrKeyNotFound {
			exists = false
			return nil
		}
		return err
	})
	return exists, err
}

// Close 关闭存储引擎
//
// 幂等：重复关闭返回 nil。
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}

	// 停止 GC 并等待后台任务退出
	e.gcCancel()
	e.gcWg.Wait()

	return e.db.Close()
}
