package packetstore

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/go-packetd/pkg/types"
)

func newTestStore(t *testing.T, maxLen int) *Store {
	t.Helper()
	s, err := New(maxLen, nil)
	require.NoError(t, err)
	return s
}

func mkPacket(n int) *types.Packet {
	return types.NewPacket(types.KindMessage, "N0CALL", "N1CALL", fmt.Sprintf("%d", n))
}

// TestStore_New 测试创建缓存
func TestStore_New(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		s := newTestStore(t, 0)
		assert.Equal(t, DefaultMaxPackets, s.MaxLen())
		assert.Equal(t, 0, s.Len())
	})

	t.Run("Custom", func(t *testing.T) {
		s := newTestStore(t, 5)
		assert.Equal(t, 5, s.MaxLen())
	})

	t.Log("✅ Store 创建测试通过")
}

// TestStore_Counters 测试收发计数与淘汰无关
func TestStore_Counters(t *testing.T) {
	s := newTestStore(t, 3)

	for i := 0; i < 10; i++ {
		s.Rx(mkPacket(i))
	}
	for i := 10; i < 14; i++ {
		s.Tx(mkPacket(i))
	}

	// 计数器精确等于 rx/tx 调用次数，不受淘汰影响
	assert.Equal(t, 10, s.TotalRx())
	assert.Equal(t, 4, s.TotalTx())
	assert.Equal(t, 3, s.Len())

	t.Log("✅ Store 计数测试通过")
}

// TestStore_Eviction 测试容量上限与最旧优先淘汰
func TestStore_Eviction(t *testing.T) {
	const capacity = 5
	s := newTestStore(t, capacity)

	packets := make([]*types.Packet, capacity+1)
	for i := range packets {
		packets[i] = mkPacket(i)
		s.Tx(packets[i])
		assert.LessOrEqual(t, s.Len(), capacity)
	}

	// 插入 C+1 个不同键后，第一个被淘汰，其余保留
	_, err := s.Find(packets[0])
	assert.ErrorIs(t, err, ErrPacketNotFound)

	for _, p := range packets[1:] {
		found, err := s.Find(p)
		require.NoError(t, err)
		assert.Equal(t, p.Key, found.Key)
	}

	t.Log("✅ Store 淘汰测试通过")
}

// TestStore_RecencyRefresh 测试重复插入续期
func TestStore_RecencyRefresh(t *testing.T) {
	s := newTestStore(t, 3)

	p0, p1, p2 := mkPacket(0), mkPacket(1), mkPacket(2)
	s.Rx(p0)
	s.Rx(p1)
	s.Rx(p2)
	require.Equal(t, 3, s.Len())

	// 重新插入 p0：大小不变，p0 移到最新位置
	s.Rx(p0)
	assert.Equal(t, 3, s.Len())

	ordered := s.Stats().Packets
	require.Len(t, ordered, 3)
	assert.Equal(t, p1.Key, ordered[0].Key)
	assert.Equal(t, p0.Key, ordered[2].Key)

	// 此时插入新键，淘汰的是最久未刷新的 p1 而不是 p0
	s.Rx(mkPacket(3))
	_, err := s.Find(p1)
	assert.ErrorIs(t, err, ErrPacketNotFound)
	_, err = s.Find(p0)
	assert.NoError(t, err)

	t.Log("✅ Store 续期测试通过")
}

// TestStore_Add 测试 Add 不计入收发计数
func TestStore_Add(t *testing.T) {
	s := newTestStore(t, 3)

	p := mkPacket(0)
	s.Add(p)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.TotalRx())
	assert.Equal(t, 0, s.TotalTx())
	assert.Empty(t, s.Stats().Types)

	found, err := s.Find(p)
	require.NoError(t, err)
	assert.Same(t, p, found)

	t.Log("✅ Store.Add 测试通过")
}

// TestStore_Find 测试查找不刷新位置
func TestStore_Find(t *testing.T) {
	s := newTestStore(t, 2)

	p0, p1 := mkPacket(0), mkPacket(1)
	s.Rx(p0)
	s.Rx(p1)

	// 查找 p0 不续期
	_, err := s.Find(p0)
	require.NoError(t, err)

	// 插入新键后淘汰的仍是 p0
	s.Rx(mkPacket(2))
	_, err = s.Find(p0)
	assert.ErrorIs(t, err, ErrPacketNotFound)

	t.Log("✅ Store.Find 测试通过")
}

// TestStore_TypeStats 测试按类别计数
func TestStore_TypeStats(t *testing.T) {
	s := newTestStore(t, 10)

	s.Rx(types.NewPacket(types.KindMessage, "A", "B", "1"))
	s.Rx(types.NewPacket(types.KindAck, "B", "A", "1"))
	s.Tx(types.NewPacket(types.KindMessage, "A", "B", "2"))
	s.Rx(types.NewPacket(types.KindBeacon, "C", "", ""))

	stats := s.Stats()
	assert.Equal(t, TypeStat{RX: 1, TX: 1}, stats.Types["MessagePacket"])
	assert.Equal(t, TypeStat{RX: 1, TX: 0}, stats.Types["AckPacket"])
	assert.Equal(t, TypeStat{RX: 1, TX: 0}, stats.Types["BeaconPacket"])

	t.Log("✅ Store 类别统计测试通过")
}

// TestStore_StatsTotalTracked 锁定 total_tracked 的历史口径
//
// total_tracked 为 rx 翻倍（rx+rx）而非 rx+tx，是沿用下来的
// 已知口径偏差；本测试锁定该行为，口径变更时会显式失败。
func TestStore_StatsTotalTracked(t *testing.T) {
	s := newTestStore(t, 10)

	for i := 0; i < 3; i++ {
		s.Rx(mkPacket(i))
	}
	for i := 3; i < 8; i++ {
		s.Tx(mkPacket(i))
	}

	stats := s.Stats()
	assert.Equal(t, 3, stats.RX)
	assert.Equal(t, 5, stats.TX)
	assert.Equal(t, 6, stats.TotalTracked, "total_tracked 应为 rx 翻倍（历史口径），不是 rx+tx")
	assert.NotEqual(t, stats.RX+stats.TX, stats.TotalTracked)

	t.Log("✅ Store total_tracked 口径测试通过")
}

// TestStore_SnapshotRestore 测试持久化快照与恢复
func TestStore_SnapshotRestore(t *testing.T) {
	s := newTestStore(t, 5)

	for i := 0; i < 4; i++ {
		s.Rx(mkPacket(i))
	}
	s.Tx(mkPacket(4))

	data, err := s.Snapshot()
	require.NoError(t, err)

	restored := newTestStore(t, 5)
	require.NoError(t, restored.Restore(data))

	assert.Equal(t, s.Len(), restored.Len())
	assert.Equal(t, s.TotalRx(), restored.TotalRx())
	assert.Equal(t, s.TotalTx(), restored.TotalTx())

	// 恢复后保持从最久到最新的顺序
	want := s.Stats().Packets
	got := restored.Stats().Packets
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].Key, got[i].Key)
	}

	assert.Equal(t, "packets", s.StoreName())

	t.Log("✅ Store 持久化测试通过")
}

// seenRecorder 记录出现通知
type seenRecorder struct {
	calls []string
}

func (r *seenRecorder) UpdateSeen(p *types.Packet) {
	r.calls = append(r.calls, p.FromCall)
}

// TestStore_SeenNotification 测试出现跟踪通知
func TestStore_SeenNotification(t *testing.T) {
	recorder := &seenRecorder{}
	s, err := New(5, recorder)
	require.NoError(t, err)

	s.Rx(mkPacket(0))
	s.Tx(mkPacket(1))
	s.Add(mkPacket(2)) // Add 不通知

	assert.Equal(t, []string{"N0CALL", "N0CALL"}, recorder.calls)

	t.Log("✅ Store 出现通知测试通过")
}
