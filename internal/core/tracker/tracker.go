package tracker

import (
	"encoding/json"
	"sync"
	"time"

	pkgif "github.com/packetd/go-packetd/pkg/interfaces"
	loglib "github.com/packetd/go-packetd/pkg/lib/log"
	"github.com/packetd/go-packetd/pkg/types"
)

var log = loglib.Logger("core/tracker")

// ============================================================================
//                              统计结构
// ============================================================================

// PacketStat 单个在途报文的诊断信息
//
// 供外部重试/退避逻辑读取，本核心不依据它做任何决策。
type PacketStat struct {
	LastSendTime time.Time `json:"last_send_time"`
	SendCount    int       `json:"send_count"`
	RetryCount   int       `json:"retry_count"`
	Message      string    `json:"message"`
}

// Stats 统计快照
type Stats struct {
	// TotalTracked 历史插入总数（单调递增，移除不回退）
	TotalTracked int `json:"total_tracked"`

	// Packets 当前在途报文的诊断信息
	Packets map[string]PacketStat `json:"packets"`
}

// ============================================================================
//                              Tracker 实现
// ============================================================================

// 确保实现接口
var (
	_ pkgif.PacketMonitor = (*Tracker)(nil)
	_ pkgif.Snapshotter   = (*Tracker)(nil)
)

// Tracker 在途报文跟踪器
type Tracker struct {
	mu sync.Mutex

	data         map[string]*types.Packet
	totalTracked int
}

// New 创建在途跟踪器
func New() *Tracker {
	return &Tracker{
		data: make(map[string]*types.Packet),
	}
}

// Tx 登记一个新发出的报文为在途
//
// 清零 SendCount，按消息序号入表；同号旧条目被静默覆盖。
func (t *Tracker) Tx(p *types.Packet) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p.SendCount = 0
	t.data[p.MsgNo] = p
	t.totalTracked++
}

// Rx 检查收到的报文是否结束某个在途条目
//
// 确认和拒绝按各自引用的序号移除；其余报文若携带捎带确认，
// 按捎带序号移除。未跟踪序号的移除是无声的空操作。
func (t *Tracker) Rx(p *types.Packet) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch p.Kind {
	case types.KindAck:
		t.remove(p.MsgNo)
	case types.KindReject:
		t.remove(p.MsgNo)
	default:
		if p.AckMsgNo != "" {
			// 捎带确认：普通数据报文顺带确认了此前的出站消息
			t.remove(p.AckMsgNo)
		}
	}
}

// Get 按序号取出在途报文
func (t *Tracker) Get(key string) (*types.Packet, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.data[key]
	return p, ok
}

// Remove 按序号移除在途条目（幂等）
func (t *Tracker) Remove(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remove(key)
}

// remove 内部移除原语，序号不存在时为空操作
func (t *Tracker) remove(key string) {
	delete(t.data, key)
}

// Len 返回当前在途条目数
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.data)
}

// TotalTracked 返回历史插入总数
func (t *Tracker) TotalTracked() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalTracked
}

// Keys 返回当前在途序号的快照
func (t *Tracker) Keys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := make([]string, 0, len(t.data))
	for key := range t.data {
		keys = append(keys, key)
	}
	return keys
}

// Values 返回当前在途报文的快照
func (t *Tracker) Values() []*types.Packet {
	t.mu.Lock()
	defer t.mu.Unlock()

	values := make([]*types.Packet, 0, len(t.data))
	for _, p := range t.data {
		values = append(values, p)
	}
	return values
}

// Items 返回当前在途映射的快照
func (t *Tracker) Items() map[string]*types.Packet {
	t.mu.Lock()
	defer t.mu.Unlock()

	items := make(map[string]*types.Packet, len(t.data))
	for key, p := range t.data {
		items[key] = p
	}
	return items
}

// Stats 返回统计快照
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	pkts := make(map[string]PacketStat, len(t.data))
	for key, p := range t.data {
		pkts[key] = PacketStat{
			LastSendTime: p.LastSendTime,
			SendCount:    p.SendCount,
			RetryCount:   p.RetryCount,
			Message:      p.Raw,
		}
	}

	return Stats{
		TotalTracked: t.totalTracked,
		Packets:      pkts,
	}
}

// ============================================================================
//                              持久化
// ============================================================================

// trackerState 持久化形式
type trackerState struct {
	TotalTracked int                      `json:"total_tracked"`
	Packets      map[string]*types.Packet `json:"packets"`
}

// StoreName 实现 pkgif.Snapshotter
func (t *Tracker) StoreName() string {
	return "tracker"
}

// Snapshot 序列化在途映射与计数器
func (t *Tracker) Snapshot() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := trackerState{
		TotalTracked: t.totalTracked,
		Packets:      t.data,
	}
	return json.Marshal(state)
}

// Restore 替换在途映射与计数器
func (t *Tracker) Restore(data []byte) error {
	var state trackerState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.data = state.Packets
	if t.data == nil {
		t.data = make(map[string]*types.Packet)
	}
	t.totalTracked = state.TotalTracked

	log.Debug("在途跟踪已恢复", "inflight", len(t.data), "totalTracked", t.totalTracked)
	return nil
}
