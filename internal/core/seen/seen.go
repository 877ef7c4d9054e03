// Package seen 实现电台最近出现跟踪
//
// List 按发送方呼号记录最近一次观测时间与累计报文数，
// 由报文缓存在每次收发后更新。锁约定与其他存储一致：
// 一把互斥锁串行化全部公共操作。
package seen

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
	loglib "github.com/packetd/go-packetd/pkg/lib/log"
	"github.com/packetd/go-packetd/pkg/types"
)

var log = loglib.Logger("core/seen")

// Entry 单个电台的出现记录
type Entry struct {
	// LastSeen 最近一次观测时间
	LastSeen time.Time `json:"last_seen"`

	// Count 累计观测到的报文数
	Count int `json:"count"`
}

// 确保实现接口
var (
	_ pkgif.SeenTracker = (*List)(nil)
	_ pkgif.Snapshotter = (*List)(nil)
)

// List 电台出现列表
type List struct {
	mu   sync.Mutex
	data map[string]*Entry
	clk  clock.Clock
}

// New 创建出现列表
func New() *List {
	return NewWithClock(clock.New())
}

// NewWithClock 使用指定时钟创建出现列表（测试用）
func NewWithClock(clk clock.Clock) *List {
	return &List{
		data: make(map[string]*Entry),
		clk:  clk,
	}
}

// UpdateSeen 记录报文发送方此刻被观测到
//
// 无发送方呼号的报文被忽略。
func (l *List) UpdateSeen(p *types.Packet) {
	if p.FromCall == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.data[p.FromCall]
	if !ok {
		entry = &Entry{}
		l.data[p.FromCall] = entry
	}
	entry.LastSeen = l.clk.Now()
	entry.Count++
}

// Get 查询某呼号的出现记录
func (l *List) Get(callsign string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.data[callsign]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// Len 返回已记录的电台数
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.data)
}

// Stats 返回全部出现记录的快照
func (l *List) Stats() map[string]Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]Entry, len(l.data))
	for callsign, entry := range l.data {
		out[callsign] = *entry
	}
	return out
}

// ============================================================================
//                              持久化
// ============================================================================

// StoreName 实现 pkgif.Snapshotter
func (l *List) StoreName() string {
	return "seen_list"
}

// Snapshot 序列化全部出现记录
func (l *List) Snapshot() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return json.Marshal(l.data)
}

// Restore 替换全部出现记录
func (l *List) Restore(data []byte) error {
	var state map[string]*Entry
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.data = state
	if l.data == nil {
		l.data = make(map[string]*Entry)
	}

	log.Debug("出现列表已恢复", "stations", len(l.data))
	return nil
}
