package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/go-packetd/config"
)

// testEngine 创建测试用存储引擎
// 使用 t.TempDir() 创建临时目录，测试结束后自动清理
func testEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := config.DefaultStorageConfig()
	cfg.DataDir = t.TempDir()
	cfg.GCInterval = config.Duration(0)

	eng, err := NewEngine(cfg)
	require.NoError(t, err, "创建存储引擎失败")

	t.Cleanup(func() {
		assert.NoError(t, eng.Close(), "关闭存储引擎失败")
	})

	return eng
}

func TestEngine_PutGet(t *testing.T) {
	eng := testEngine(t)

	key := []byte("key1")
	value := []byte("value1")

	require.NoError(t, eng.Put(key, value))

	got, err := eng.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	t.Log("✅ 基础读写测试通过")
}

func TestEngine_GetNotFound(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.Get([]byte("missing"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.True(t, IsNotFound(err))

	t.Log("✅ 键不存在测试通过")
}

func TestEngine_EmptyKey(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.Get(nil)
	assert.ErrorIs(t, err, ErrEmptyKey)

	err = eng.Put(nil, []byte("v"))
	assert.ErrorIs(t, err, ErrEmptyKey)

	t.Log("✅ 空键测试通过")
}

func TestEngine_Delete(t *testing.T) {
	eng := testEngine(t)

	key := []byte("delete-key")
	require.NoError(t, eng.Put(key, []byte("v")))
	require.NoError(t, eng.Delete(key))

	_, err := eng.Get(key)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// 删除不存在的键不报错
	assert.NoError(t, eng.Delete([]byte("never-existed")))

	t.Log("✅ 删除测试通过")
}

func TestEngine_Has(t *testing.T) {
	eng := testEngine(t)

	key := []byte("has-key")

	exists, err := eng.Has(key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, eng.Put(key, []byte("v")))

	exists, err = eng.Has(key)
	require.NoError(t, err)
	assert.True(t, exists)

	t.Log("✅ 存在性检查测试通过")
}

func TestEngine_CloseIdempotent(t *testing.T) {
	cfg := config.DefaultStorageConfig()
	cfg.DataDir = t.TempDir()

	eng, err := NewEngine(cfg)
	require.NoError(t, err)

	require.NoError(t, eng.Close())
	require.NoError(t, eng.Close())

	// 关闭后所有操作返回 ErrClosed
	_, err = eng.Get([]byte("k"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, eng.Put([]byte("k"), []byte("v")), ErrClosed)

	t.Log("✅ 幂等关闭测试通过")
}

func TestEngine_Reopen(t *testing.T) {
	cfg := config.DefaultStorageConfig()
	cfg.DataDir = t.TempDir()

	eng, err := NewEngine(cfg)
	require.NoError(t, err)
	require.NoError(t, eng.Put([]byte("persist"), []byte("across-restart")))
	require.NoError(t, eng.Close())

	// 重新打开同一目录，数据应仍然存在
	eng2, err := NewEngine(cfg)
	require.NoError(t, err)
	defer eng2.Close()

	got, err := eng2.Get([]byte("persist"))
	require.NoError(t, err)
	assert.Equal(t, []byte("across-restart"), got)

	t.Log("✅ 重启恢复测试通过")
}

func TestEngine_StartWithGC(t *testing.T) {
	cfg := config.DefaultStorageConfig()
	cfg.DataDir = t.TempDir()
	cfg.GCInterval = config.Duration(10 * time.Millisecond)

	eng, err := NewEngine(cfg)
	require.NoError(t, err)
	require.NoError(t, eng.Start())

	// 让 GC 跑几轮后正常关闭，不应 panic 或泄漏
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, eng.Close())

	t.Log("✅ GC 后台任务测试通过")
}

// ============= KV 前缀隔离测试 =============

func TestKV_PrefixIsolation(t *testing.T) {
	eng := testEngine(t)

	a := NewKV(eng, []byte("a/"))
	b := NewKV(eng, []byte("b/"))

	require.NoError(t, a.Put([]byte("key"), []byte("from-a")))
	require.NoError(t, b.Put([]byte("key"), []byte("from-b")))

	gotA, err := a.Get([]byte("key"))
	require.NoError(t, err)
	gotB, err := b.Get([]byte("key"))
	require.NoError(t, err)

	assert.Equal(t, []byte("from-a"), gotA)
	assert.Equal(t, []byte("from-b"), gotB)

	// 删除 a 的键不影响 b
	require.NoError(t, a.Delete([]byte("key")))
	exists, err := b.Has([]byte("key"))
	require.NoError(t, err)
	assert.True(t, exists)

	t.Log("✅ 前缀隔离测试通过")
}

func TestKV_JSON(t *testing.T) {
	eng := testEngine(t)
	kv := NewKV(eng, []byte("j/"))

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	in := payload{Name: "packetd", Count: 42}
	require.NoError(t, kv.PutJSON([]byte("obj"), in))

	var out payload
	require.NoError(t, kv.GetJSON([]byte("obj"), &out))
	assert.Equal(t, in, out)

	t.Log("✅ JSON 读写测试通过")
}
