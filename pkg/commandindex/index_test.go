package commandindex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeExecutable drops an empty executable file into dir.
func writeExecutable(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755))
}

func newTestIndex(t *testing.T, pathDir string, aliases map[string]string) *Index {
	t.Helper()
	return New(Options{
		PathEnv:     func() string { return pathDir },
		AliasSource: StaticAliasSource(aliases),
	})
}

func TestIndex_SnapshotMergesAllSources(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix execute bits")
	}

	dir := t.TempDir()
	writeExecutable(t, dir, "mytool")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	ix := newTestIndex(t, dir, map[string]string{"ll": "ls -la"})
	snap := ix.Snapshot(context.Background())

	assert.True(t, snap.Contains("mytool"), "PATH executable")
	assert.True(t, snap.Contains("ll"), "alias name")
	assert.True(t, snap.Contains("cd"), "builtin")
	assert.False(t, snap.Contains("notes.txt"), "non-executable file")
	assert.Empty(t, snap.Degraded())
}

func TestIndex_ContainsIsCaseSensitive(t *testing.T) {
	ix := newTestIndex(t, "", StaticAliasSource{})
	snap := ix.Snapshot(context.Background())

	assert.True(t, snap.Contains("git"))
	assert.False(t, snap.Contains("Git"))
	assert.False(t, snap.Contains("GIT"))
}

func TestIndex_DegradedSourcesAreSkippedNotFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	ix := New(Options{
		PathEnv:     func() string { return missing },
		AliasSource: aliasSourceFunc(func(context.Context) (map[string]string, error) {
			return nil, errors.New("shell exploded")
		}),
	})
	snap := ix.Snapshot(context.Background())

	// Worst case is still a usable snapshot containing the builtin list.
	assert.True(t, snap.Contains("cd"))
	assert.True(t, snap.Contains("echo"))
	assert.Len(t, snap.Degraded(), 2)
}

func TestIndex_EmptyPathEnvIsDegraded(t *testing.T) {
	ix := newTestIndex(t, "", StaticAliasSource{})
	snap := ix.Snapshot(context.Background())

	require.Len(t, snap.Degraded(), 1)
	assert.Contains(t, snap.Degraded()[0], "unset")
}

func TestIndex_PrefixSearch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix execute bits")
	}

	dir := t.TempDir()
	for _, name := range []string{"git", "gist", "gzip", "grep"} {
		writeExecutable(t, dir, name)
	}

	ix := newTestIndex(t, dir, nil)
	snap := ix.Snapshot(context.Background())

	assert.Equal(t, []string{"gist", "git"}, snap.PrefixSearch("gi", 0))
	assert.Equal(t, []string{"gist"}, snap.PrefixSearch("gi", 1), "limit caps results")
	assert.Empty(t, snap.PrefixSearch("nosuchprefix", 0))
}

func TestIndex_PrefixSearchDeduplicates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix execute bits")
	}

	dir := t.TempDir()
	writeExecutable(t, dir, "git") // also present in the builtin list

	ix := newTestIndex(t, dir, map[string]string{"git": "git --no-pager"})
	snap := ix.Snapshot(context.Background())

	assert.Equal(t, []string{"git"}, snap.PrefixSearch("git", 0))
}

func TestIndex_LazyBuildIsSingleFlight(t *testing.T) {
	var buildCalls int32
	var mu sync.Mutex

	ix := New(Options{
		PathEnv: func() string { return "" },
		AliasSource: aliasSourceFunc(func(context.Context) (map[string]string, error) {
			mu.Lock()
			buildCalls++
			mu.Unlock()
			time.Sleep(10 * time.Millisecond)
			return nil, nil
		}),
	})

	var wg sync.WaitGroup
	snaps := make([]*Snapshot, 8)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i] = ix.Snapshot(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), buildCalls, "concurrent callers share one build")
	for _, snap := range snaps[1:] {
		assert.Same(t, snaps[0], snap)
	}
}

func TestIndex_RefreshPublishesNewSnapshot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix execute bits")
	}

	dir := t.TempDir()
	ix := newTestIndex(t, dir, nil)

	before := ix.Snapshot(context.Background())
	assert.False(t, before.Contains("latecomer"))

	writeExecutable(t, dir, "latecomer")
	after := ix.Refresh(context.Background())

	assert.True(t, after.Contains("latecomer"))
	// The old snapshot is immutable; in-flight readers are unaffected.
	assert.False(t, before.Contains("latecomer"))
	assert.Same(t, after, ix.Snapshot(context.Background()))
}

// aliasSourceFunc adapts a function to the AliasSource interface.
type aliasSourceFunc func(ctx context.Context) (map[string]string, error)

func (f aliasSourceFunc) ListAliases(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}
