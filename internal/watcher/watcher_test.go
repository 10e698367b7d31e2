package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReportsExternalChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "main.fs")
	require.NoError(t, os.WriteFile(path, []byte(":Code Main\nA^1\n"), 0o644))

	var held atomic.Uint64
	held.Store(HashText(":Code Main\nA^1\n"))
	changes := make(chan string, 4)

	w, err := New(path, 20*time.Millisecond, held.Load, func(p string) { changes <- p })
	require.NoError(t, err)
	require.NoError(t, w.Start())

	// Same content as the editor holds: not reported.
	require.NoError(t, os.WriteFile(path, []byte(":Code Main\nA^1\n"), 0o644))
	select {
	case p := <-changes:
		t.Fatalf("unexpected change for %s", p)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte(":Code Main\nB^1\n"), 0o644))
	select {
	case p := <-changes:
		assert.Equal(t, w.Path(), p)
	case <-time.After(2 * time.Second):
		t.Fatal("change was not reported")
	}

	require.NoError(t, w.Stop())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "main.fs")
	require.NoError(t, os.WriteFile(path, []byte("A^1\n"), 0o644))

	var calls atomic.Int32
	w, err := New(path, 10*time.Millisecond, nil, func(string) { calls.Add(1) })
	require.NoError(t, err)
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.fs"), []byte("B^1\n"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, calls.Load())

	require.NoError(t, w.Stop())
}

func TestSummarize(t *testing.T) {
	assert.True(t, Summarize("A^1", "A^1").Empty())
	assert.Equal(t, "no changes", Summarize("", "").String())

	c := Summarize("A^1\n", "A^1\nB^2\n")
	assert.Equal(t, Change{Inserted: 4}, c)
	assert.Equal(t, "+4 -0 chars", c.String())

	assert.Equal(t, Change{Deleted: 4}, Summarize("A^1\nB^2\n", "A^1\n"))
}
