// Package classifier decides whether a line of interactive input is an
// executable shell invocation or a natural-language utterance, so a hybrid
// command-line/assistant front end can route it without an explicit prefix.
//
// The decision fuses three signals: membership of the first token in the
// command index, path-like first tokens, and a heuristic natural-language
// score over the raw text. It also exposes prefix suggestions over the same
// index for interactive hinting.
package classifier

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/helmsh/rudder/pkg/commandindex"
	"github.com/helmsh/rudder/pkg/heuristics"
	"github.com/helmsh/rudder/pkg/shellwords"
)

// Options configures a Classifier. The zero value builds a fully live
// classifier: real PATH scan, real shell alias discovery, default weights.
type Options struct {
	Logger *zap.Logger

	// Index lets several classifiers (or the embedding application) share
	// one command index. Nil means the classifier owns a fresh one.
	Index *commandindex.Index

	// AliasSource overrides alias discovery for an owned index. Ignored
	// when Index is set.
	AliasSource commandindex.AliasSource

	// Heuristics supplies scorer weights; the zero value selects
	// heuristics.DefaultConfig.
	Heuristics heuristics.Config

	// SuggestionLimit caps Suggestions results; zero selects
	// commandindex.DefaultSuggestionLimit.
	SuggestionLimit int

	// DisableLookPath turns off the PATH lookup probe for first tokens the
	// index does not know. Disable it to keep classification fully
	// hermetic, e.g. in tests against a fake index.
	DisableLookPath bool
}

// Classifier is the public decision surface. It is safe for concurrent use;
// the only blocking call is the lazy one-time index build on first use.
type Classifier struct {
	logger          *zap.Logger
	index           *commandindex.Index
	scorer          *heuristics.Scorer
	suggestionLimit int
	lookPath        bool
}

// New assembles a Classifier from options.
func New(opts Options) *Classifier {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	index := opts.Index
	if index == nil {
		index = commandindex.New(commandindex.Options{
			Logger:      logger,
			AliasSource: opts.AliasSource,
		})
	}

	cfg := opts.Heuristics
	if cfg == (heuristics.Config{}) {
		cfg = heuristics.DefaultConfig()
	}

	return &Classifier{
		logger:          logger,
		index:           index,
		scorer:          heuristics.NewScorer(cfg),
		suggestionLimit: opts.SuggestionLimit,
		lookPath:        !opts.DisableLookPath,
	}
}

// IsShellCommand reports whether input should be routed to a shell. The
// verdict is deterministic for a given input, index snapshot, and scorer
// configuration. The first call may trigger the lazy index build.
func (c *Classifier) IsShellCommand(input string) bool {
	tokens, err := shellwords.Split(input)
	if err != nil {
		// Malformed quoting is routed to the language side rather than
		// guessed at as a command.
		c.logger.Debug("tokenize failed, routing to language",
			zap.String("input", input), zap.Error(err))
		return false
	}
	if len(tokens) == 0 {
		return false
	}

	first := tokens[0]
	if c.knownCommand(first) {
		// A trailing question mark wins over first-token evidence: the
		// user is asking about the command, not running it.
		return !strings.HasSuffix(strings.TrimSpace(input), "?")
	}

	score := c.scorer.Score(input, tokens)
	verdict := score < c.scorer.Config().DecisionThreshold
	c.logger.Debug("heuristic verdict",
		zap.String("first_token", first),
		zap.Float64("score", score),
		zap.Bool("is_command", verdict))
	return verdict
}

// knownCommand reports whether name is executable on this machine: a
// path-like invocation, an index member, or (as a last resort) resolvable
// through PATH lookup.
func (c *Classifier) knownCommand(name string) bool {
	if looksLikePath(name) {
		return true
	}
	if c.snapshot().Contains(name) {
		return true
	}
	return c.probeLookPath(name)
}

// probeLookPath checks PATH for commands that appeared after the snapshot
// was built. The snapshot itself is never mutated; a hit here simply means
// the caller should Refresh if they want the index to catch up.
func (c *Classifier) probeLookPath(name string) bool {
	if !c.lookPath || strings.Contains(name, "/") {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}

func looksLikePath(name string) bool {
	return strings.HasPrefix(name, "./") ||
		strings.HasPrefix(name, "../") ||
		strings.HasPrefix(name, "/")
}

// Suggestions returns command names starting with prefix, sorted and
// deduplicated, for interactive hinting. It shares the classifier's index
// snapshot and may trigger the lazy build.
func (c *Classifier) Suggestions(prefix string) []string {
	return c.snapshot().PrefixSearch(prefix, c.suggestionLimit)
}

// Refresh rebuilds the command index and atomically publishes the new
// snapshot. In-flight readers keep the snapshot they already hold.
func (c *Classifier) Refresh(ctx context.Context) {
	c.index.Refresh(ctx)
}

// Index exposes the underlying command index so an embedding application
// can share it across classifier instances.
func (c *Classifier) Index() *commandindex.Index {
	return c.index
}

func (c *Classifier) snapshot() *commandindex.Snapshot {
	return c.index.Snapshot(context.Background())
}
