// Package commandindex discovers and caches the set of names this machine
// recognizes as executable commands: PATH executables, shell aliases, and a
// fixed builtin list. Discovery never fails outright; any source that
// cannot be read is skipped and the union of whatever succeeded is
// published as an immutable snapshot.
package commandindex

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultBuildTimeout bounds a single build, including the alias-listing
// subprocess. On timeout the partial result is published.
const DefaultBuildTimeout = 3 * time.Second

// Options configures an Index. The zero value is usable: it scans $PATH,
// asks $SHELL for aliases, and logs nowhere.
type Options struct {
	Logger *zap.Logger

	// AliasSource supplies the alias table. Nil selects a ShellAliasSource
	// driven by $SHELL. Use StaticAliasSource to keep builds in-process.
	AliasSource AliasSource

	// PathEnv returns the PATH-style list of executable directories. Nil
	// reads the PATH environment variable.
	PathEnv func() string

	// BuildTimeout bounds each build; zero means DefaultBuildTimeout.
	BuildTimeout time.Duration
}

// Index owns the snapshot lifecycle: built lazily on first use, explicitly
// refreshable, safe for concurrent readers. Readers always see a fully
// built snapshot; a refresh swaps the pointer atomically while in-flight
// readers keep the one they already obtained.
type Index struct {
	logger       *zap.Logger
	aliasSource  AliasSource
	pathEnv      func() string
	buildTimeout time.Duration

	buildMu sync.Mutex
	snap    atomic.Pointer[Snapshot]
}

// New creates an Index. No discovery happens until the first Snapshot or
// Refresh call.
func New(opts Options) *Index {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	aliasSource := opts.AliasSource
	if aliasSource == nil {
		aliasSource = &ShellAliasSource{Logger: logger}
	}

	pathEnv := opts.PathEnv
	if pathEnv == nil {
		pathEnv = func() string { return os.Getenv("PATH") }
	}

	timeout := opts.BuildTimeout
	if timeout <= 0 {
		timeout = DefaultBuildTimeout
	}

	return &Index{
		logger:       logger,
		aliasSource:  aliasSource,
		pathEnv:      pathEnv,
		buildTimeout: timeout,
	}
}

// Snapshot returns the current snapshot, building one first if none has
// been published yet. Concurrent first-time callers wait on the single
// in-progress build rather than triggering duplicates.
func (ix *Index) Snapshot(ctx context.Context) *Snapshot {
	if snap := ix.snap.Load(); snap != nil {
		return snap
	}

	ix.buildMu.Lock()
	defer ix.buildMu.Unlock()

	// Another caller may have finished the build while we waited.
	if snap := ix.snap.Load(); snap != nil {
		return snap
	}

	snap := ix.build(ctx)
	ix.snap.Store(snap)
	return snap
}

// Refresh rebuilds the index and atomically publishes the new snapshot.
// Readers holding the previous snapshot are unaffected.
func (ix *Index) Refresh(ctx context.Context) *Snapshot {
	ix.buildMu.Lock()
	defer ix.buildMu.Unlock()

	snap := ix.build(ctx)
	ix.snap.Store(snap)
	return snap
}

// build assembles a snapshot from the three sources. It never fails; in the
// worst case the snapshot holds only the builtin list, with every skipped
// source recorded and logged.
func (ix *Index) build(ctx context.Context) *Snapshot {
	ctx, cancel := context.WithTimeout(ctx, ix.buildTimeout)
	defer cancel()

	start := time.Now()
	names := Builtins()
	var degraded []string

	if pathEnv := ix.pathEnv(); pathEnv == "" {
		degraded = append(degraded, "path: environment variable unset")
	} else {
		found, skipped := scanPathDirs(ctx, pathEnv)
		names = append(names, found...)
		degraded = append(degraded, skipped...)
	}

	aliases, err := ix.aliasSource.ListAliases(ctx)
	if err != nil {
		degraded = append(degraded, "aliases: "+err.Error())
	} else {
		names = append(names, lo.Keys(aliases)...)
	}

	snap := newSnapshot(names, degraded)
	if len(degraded) > 0 {
		ix.logger.Warn("command index built with reduced sources",
			zap.Strings("skipped", degraded),
			zap.Int("names", snap.Len()),
			zap.Duration("elapsed", time.Since(start)))
	} else {
		ix.logger.Debug("command index built",
			zap.Int("names", snap.Len()),
			zap.Duration("elapsed", time.Since(start)))
	}
	return snap
}
