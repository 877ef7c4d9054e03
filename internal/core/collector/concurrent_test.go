package collector

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packetd/go-packetd/pkg/types"
)

// countingMonitor 原子计数观察者，可被并发分发
type countingMonitor struct {
	rx *atomic.Int64
	tx *atomic.Int64
}

func (m *countingMonitor) Rx(p *types.Packet) { m.rx.Add(1) }
func (m *countingMonitor) Tx(p *types.Packet) { m.tx.Add(1) }

// TestCollector_ConcurrentDispatch 测试多线程并发分发无丢失
func TestCollector_ConcurrentDispatch(t *testing.T) {
	c := New()
	var rx, tx atomic.Int64

	c.Register(func() any { return &countingMonitor{rx: &rx, tx: &tx} })

	const workers = 16
	const perWorker = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				p := types.NewPacket(types.KindMessage, "N0CALL", "N1CALL", types.NewMsgNo())
				if id%2 == 0 {
					assert.NoError(t, c.Rx(p))
				} else {
					assert.NoError(t, c.Tx(p))
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(workers/2*perWorker), rx.Load())
	assert.Equal(t, int64(workers/2*perWorker), tx.Load())

	t.Log("✅ Collector 并发分发测试通过")
}

// TestCollector_ConcurrentRegister 测试注册与分发并发进行
func TestCollector_ConcurrentRegister(t *testing.T) {
	c := New()
	var rx, tx atomic.Int64

	var wg sync.WaitGroup

	// 一半协程注册，一半协程分发；分发在注册表快照上进行，
	// 期间追加的工厂只影响后续事件。
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Register(func() any { return &countingMonitor{rx: &rx, tx: &tx} })
		}()
		go func() {
			defer wg.Done()
			p := types.NewPacket(types.KindMessage, "N0CALL", "N1CALL", types.NewMsgNo())
			assert.NoError(t, c.Rx(p))
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, c.Len())

	t.Log("✅ Collector 并发注册测试通过")
}
