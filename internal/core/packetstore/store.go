package packetstore

import (
	"encoding/json"
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
	loglib "github.com/packetd/go-packetd/pkg/lib/log"
	"github.com/packetd/go-packetd/pkg/types"
)

var log = loglib.Logger("core/packetstore")

// DefaultMaxPackets 默认缓存容量
const DefaultMaxPackets = 100

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrPacketNotFound 缓存中没有该报文
	ErrPacketNotFound = errors.New("packet not found in store")
)

// ============================================================================
//                              统计结构
// ============================================================================

// TypeStat 按类别的收发计数
type TypeStat struct {
	RX int `json:"rx"`
	TX int `json:"tx"`
}

// Stats 统计快照
type Stats struct {
	// TotalTracked 历史口径的总量字段（见 Stats() 说明）
	TotalTracked int `json:"total_tracked"`

	// RX/TX 收发总量（单调递增，与淘汰无关）
	RX int `json:"rx"`
	TX int `json:"tx"`

	// Types 按类别计数的副本
	Types map[string]TypeStat `json:"types"`

	// Packets 当前缓存内容，从最久到最新
	Packets []*types.Packet `json:"packets"`
}

// ============================================================================
//                              Store 实现
// ============================================================================

// 确保实现接口
var (
	_ pkgif.PacketMonitor = (*Store)(nil)
	_ pkgif.Snapshotter   = (*Store)(nil)
)

// Store 有界报文缓存
type Store struct {
	mu sync.Mutex

	cache  *lru.Cache[string, *types.Packet]
	maxLen int

	totalRx   int
	totalTx   int
	typeStats map[string]*TypeStat

	// seen 出现跟踪协作方（可为 nil），在锁外调用
	seen pkgif.SeenTracker
}

// New 创建报文缓存
//
// maxLen 非正时使用 DefaultMaxPackets。seen 可为 nil。
func New(maxLen int, seen pkgif.SeenTracker) (*Store, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxPackets
	}
	cache, err := lru.New[string, *types.Packet](maxLen)
	if err != nil {
		return nil, err
	}
	return &Store{
		cache:     cache,
		maxLen:    maxLen,
		typeStats: make(map[string]*TypeStat),
		seen:      seen,
	}, nil
}

// Rx 记录一个收到的报文
func (s *Store) Rx(p *types.Packet) {
	s.mu.Lock()
	s.totalRx++
	s.add(p)
	s.typeStat(p.TypeName()).RX++
	s.mu.Unlock()

	s.notifySeen(p)
}

// Tx 记录一个发出的报文
func (s *Store) Tx(p *types.Packet) {
	s.mu.Lock()
	s.totalTx++
	s.add(p)
	s.typeStat(p.TypeName()).TX++
	s.mu.Unlock()

	s.notifySeen(p)
}

// Add 只插入/刷新缓存，不计入收发计数
//
// 用于需要记录报文但不算作流量的路径（如从持久化恢复）。
func (s *Store) Add(p *types.Packet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(p)
}

// add 插入或刷新一个报文
//
// LRU 语义与刷新式 FIFO 完全一致：已存在的键移到最新位置
// 且大小不变；容量已满时淘汰最久未刷新的条目。
func (s *Store) add(p *types.Packet) {
	s.cache.Add(p.Key, p)
}

// Find 按键查找报文
//
// 查找不刷新条目的新旧位置；键不存在时返回 ErrPacketNotFound。
func (s *Store) Find(p *types.Packet) (*types.Packet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, ok := s.cache.Peek(p.Key)
	if !ok {
		return nil, ErrPacketNotFound
	}
	return found, nil
}

// MaxLen 返回缓存容量
func (s *Store) MaxLen() int {
	return s.maxLen
}

// Len 返回当前缓存大小（不是历史收发总量）
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// TotalRx 返回收到的报文总数
func (s *Store) TotalRx() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalRx
}

// TotalTx 返回发出的报文总数
func (s *Store) TotalTx() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalTx
}

// Stats 返回统计快照
//
// TotalTracked 沿用历史实现的口径：rx 计数翻倍（rx+rx），
// 而不是 rx+tx。外部面板依赖该字段的既有数值，修正会改变
// 可观测输出，因此保留原口径。
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	typesCopy := make(map[string]TypeStat, len(s.typeStats))
	for name, st := range s.typeStats {
		typesCopy[name] = *st
	}

	return Stats{
		TotalTracked: s.totalRx + s.totalRx,
		RX:           s.totalRx,
		TX:           s.totalTx,
		Types:        typesCopy,
		Packets:      s.packetsLocked(),
	}
}

// typeStat 取出（缺失时创建）某类别的计数记录
func (s *Store) typeStat(name string) *TypeStat {
	st, ok := s.typeStats[name]
	if !ok {
		st = &TypeStat{}
		s.typeStats[name] = st
	}
	return st
}

// packetsLocked 返回当前缓存内容，从最久到最新
func (s *Store) packetsLocked() []*types.Packet {
	keys := s.cache.Keys()
	out := make([]*types.Packet, 0, len(keys))
	for _, key := range keys {
		if p, ok := s.cache.Peek(key); ok {
			out = append(out, p)
		}
	}
	return out
}

// notifySeen 通知出现跟踪协作方
//
// 在存储锁之外调用，协作方故障不得影响收发流程。
func (s *Store) notifySeen(p *types.Packet) {
	if s.seen == nil {
		return
	}
	s.seen.UpdateSeen(p)
}

// ============================================================================
//                              持久化
// ============================================================================

// storeState 持久化形式
type storeState struct {
	TotalRx int                  `json:"total_rx"`
	TotalTx int                  `json:"total_tx"`
	Types   map[string]*TypeStat `json:"types"`
	Packets []*types.Packet      `json:"packets"`
}

// StoreName 实现 pkgif.Snapshotter
func (s *Store) StoreName() string {
	return "packets"
}

// Snapshot 序列化缓存内容与计数器
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := storeState{
		TotalRx: s.totalRx,
		TotalTx: s.totalTx,
		Types:   s.typeStats,
		Packets: s.packetsLocked(),
	}
	return json.Marshal(state)
}

// Restore 替换缓存内容与计数器
func (s *Store) Restore(data []byte) error {
	var state storeState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge()
	for _, p := range state.Packets {
		p.EnsureKey()
		s.cache.Add(p.Key, p)
	}
	s.totalRx = state.TotalRx
	s.totalTx = state.TotalTx
	s.typeStats = state.Types
	if s.typeStats == nil {
		s.typeStats = make(map[string]*TypeStat)
	}

	log.Debug("报文缓存已恢复", "packets", s.cache.Len(), "rx", s.totalRx, "tx", s.totalTx)
	return nil
}
