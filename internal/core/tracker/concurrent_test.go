package tracker

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packetd/go-packetd/pkg/types"
)

// TestTracker_ConcurrentTx 测试 N 线程各登记一个序号，无丢失更新
func TestTracker_ConcurrentTx(t *testing.T) {
	tr := New()

	const workers = 64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p := types.NewPacket(types.KindMessage, "N0CALL", "N1CALL", fmt.Sprintf("%d", id))
			tr.Tx(p)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, tr.Len())
	assert.Equal(t, workers, tr.TotalTracked())
	for i := 0; i < workers; i++ {
		_, ok := tr.Get(fmt.Sprintf("%d", i))
		assert.True(t, ok, "序号 %d 丢失", i)
	}

	t.Log("✅ Tracker 并发登记测试通过")
}

// TestTracker_ConcurrentTxAndAck 测试登记与确认并发交错
func TestTracker_ConcurrentTxAndAck(t *testing.T) {
	tr := New()

	const pairs = 200

	var wg sync.WaitGroup
	for i := 0; i < pairs; i++ {
		msgNo := fmt.Sprintf("%d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			tr.Tx(types.NewPacket(types.KindMessage, "N0CALL", "N1CALL", msgNo))
		}()
		go func() {
			defer wg.Done()
			// 确认可能先于登记到达：两种交错都合法，
			// 先到的确认是无声空操作
			tr.Rx(types.NewPacket(types.KindAck, "N1CALL", "N0CALL", msgNo))
		}()
	}
	wg.Wait()

	// 历史插入总数精确；当前在途数取决于交错顺序
	assert.Equal(t, pairs, tr.TotalTracked())
	assert.LessOrEqual(t, tr.Len(), pairs)

	t.Log("✅ Tracker 并发确认测试通过")
}

// TestTracker_ConcurrentStats 测试统计读取与写入并发
func TestTracker_ConcurrentStats(t *testing.T) {
	tr := New()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := 0
			for {
				select {
				case <-stop:
					return
				default:
				}
				stats := tr.Stats()
				// totalTracked 单调不减
				assert.GreaterOrEqual(t, stats.TotalTracked, last)
				last = stats.TotalTracked
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		tr.Tx(types.NewPacket(types.KindMessage, "N0CALL", "N1CALL", fmt.Sprintf("%d", i)))
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, 1000, tr.TotalTracked())

	t.Log("✅ Tracker 并发统计测试通过")
}
