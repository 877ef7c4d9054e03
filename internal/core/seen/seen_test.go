package seen

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/go-packetd/pkg/types"
)

// TestList_UpdateSeen 测试出现记录更新
func TestList_UpdateSeen(t *testing.T) {
	mock := clock.NewMock()
	l := NewWithClock(mock)

	p := types.NewPacket(types.KindMessage, "N0CALL", "N1CALL", "1")

	l.UpdateSeen(p)
	entry, ok := l.Get("N0CALL")
	require.True(t, ok)
	assert.Equal(t, mock.Now(), entry.LastSeen)
	assert.Equal(t, 1, entry.Count)

	// 时间推进后再次观测：时间刷新、计数累加
	mock.Add(time.Minute)
	l.UpdateSeen(p)
	entry, _ = l.Get("N0CALL")
	assert.Equal(t, mock.Now(), entry.LastSeen)
	assert.Equal(t, 2, entry.Count)

	assert.Equal(t, 1, l.Len())

	t.Log("✅ SeenList 更新测试通过")
}

// TestList_UpdateSeen_NoCallsign 测试无呼号报文被忽略
func TestList_UpdateSeen_NoCallsign(t *testing.T) {
	l := New()

	l.UpdateSeen(&types.Packet{Kind: types.KindBeacon})
	assert.Equal(t, 0, l.Len())

	t.Log("✅ SeenList 无呼号测试通过")
}

// TestList_Stats 测试快照独立性
func TestList_Stats(t *testing.T) {
	l := New()

	l.UpdateSeen(types.NewPacket(types.KindMessage, "A1AAA", "B", "1"))
	l.UpdateSeen(types.NewPacket(types.KindMessage, "C2CCC", "B", "2"))

	stats := l.Stats()
	assert.Len(t, stats, 2)

	// 修改快照不影响列表
	delete(stats, "A1AAA")
	assert.Equal(t, 2, l.Len())

	_, ok := l.Get("MISSING")
	assert.False(t, ok)

	t.Log("✅ SeenList 快照测试通过")
}

// TestList_SnapshotRestore 测试持久化快照与恢复
func TestList_SnapshotRestore(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	l := NewWithClock(mock)

	for i := 0; i < 3; i++ {
		l.UpdateSeen(types.NewPacket(types.KindMessage, "N0CALL", "N1CALL", fmt.Sprintf("%d", i)))
	}

	data, err := l.Snapshot()
	require.NoError(t, err)

	restored := New()
	require.NoError(t, restored.Restore(data))

	entry, ok := restored.Get("N0CALL")
	require.True(t, ok)
	assert.Equal(t, 3, entry.Count)
	assert.True(t, entry.LastSeen.Equal(mock.Now()))

	assert.Equal(t, "seen_list", l.StoreName())

	t.Log("✅ SeenList 持久化测试通过")
}

// TestList_Concurrent 测试并发更新无丢失
func TestList_Concurrent(t *testing.T) {
	l := New()

	const workers = 8
	const perWorker = 250

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			callsign := fmt.Sprintf("CALL%d", id)
			for j := 0; j < perWorker; j++ {
				l.UpdateSeen(types.NewPacket(types.KindMessage, callsign, "X", "1"))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, l.Len())
	for i := 0; i < workers; i++ {
		entry, ok := l.Get(fmt.Sprintf("CALL%d", i))
		require.True(t, ok)
		assert.Equal(t, perWorker, entry.Count)
	}

	t.Log("✅ SeenList 并发测试通过")
}
