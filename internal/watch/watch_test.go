package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startWatcher(t *testing.T, path string, calls *atomic.Int32) *FileWatcher {
	t.Helper()
	fw, err := New(path, func() { calls.Add(1) }, log.New(io.Discard))
	require.NoError(t, err)
	fw.SetDebounce(50 * time.Millisecond)
	require.NoError(t, fw.Start(context.Background()))
	t.Cleanup(fw.Stop)
	return fw
}

func TestDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"title":"A"}]`), 0o644))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestDetectsRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	tmp := filepath.Join(dir, ".tasks.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`[]`), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestDebounceCollapsesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	var calls atomic.Int32
	fw, err := New(path, func() { calls.Add(1) }, log.New(io.Discard))
	require.NoError(t, err)
	fw.SetDebounce(300 * time.Millisecond)
	require.NoError(t, fw.Start(context.Background()))
	defer fw.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStopWithoutStart(t *testing.T) {
	fw, err := New(filepath.Join(t.TempDir(), "tasks.json"), func() {}, nil)
	require.NoError(t, err)
	fw.Stop()
}
