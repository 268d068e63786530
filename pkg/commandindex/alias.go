package commandindex

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// AliasSource lists the alias table of the user's shell. Implementations
// that shell out must honor the context deadline; the index abandons alias
// discovery for a build when the source fails or times out.
type AliasSource interface {
	ListAliases(ctx context.Context) (map[string]string, error)
}

// StaticAliasSource serves a fixed alias table. It is the implementation to
// use when alias discovery must not leave the process, including tests.
type StaticAliasSource map[string]string

// ListAliases returns the fixed table.
func (s StaticAliasSource) ListAliases(context.Context) (map[string]string, error) {
	return s, nil
}

// ShellAliasSource invokes a real shell non-interactively to print its
// alias table and parses the output.
type ShellAliasSource struct {
	// Shell is the shell binary to invoke. Empty falls back to $SHELL,
	// then /bin/bash.
	Shell  string
	Logger *zap.Logger
}

// ListAliases runs `shell -i -c alias` and collects alias names with their
// expansions. The -i flag is required because most shells only read the rc
// files that define aliases in interactive mode.
func (s *ShellAliasSource) ListAliases(ctx context.Context) (map[string]string, error) {
	shell := s.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/bash"
	}

	cmd := exec.CommandContext(ctx, shell, "-i", "-c", "alias")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// Interactive shells write rc-file noise to stderr; drop it.
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("listing aliases via %s: %w", shell, err)
	}

	aliases := ParseAliases(stdout.String())
	if s.Logger != nil {
		s.Logger.Debug("shell alias table parsed",
			zap.String("shell", shell),
			zap.Int("aliases", len(aliases)))
	}
	return aliases, nil
}

// aliasLineRE matches both bash output ("alias ll='ls -la'") and zsh output
// ("ll='ls -la'"). The name may not contain whitespace or '='.
var aliasLineRE = regexp.MustCompile(`^(?:alias\s+)?([^\s=]+)=(.*)$`)

// ParseAliases parses the output of a shell's `alias` listing into a
// name-to-expansion map. Unparseable lines are skipped.
func ParseAliases(output string) map[string]string {
	aliases := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		if name, expansion, ok := parseAliasLine(line); ok {
			aliases[name] = expansion
		}
	}
	return aliases
}

func parseAliasLine(line string) (name, expansion string, ok bool) {
	m := aliasLineRE.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	return m[1], unquoteAliasValue(m[2]), true
}

// unquoteAliasValue strips the outer quoting shells put around alias
// expansions. Single-quoted values use the '\'' idiom for embedded quotes.
func unquoteAliasValue(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < 2 {
		return v
	}
	switch {
	case v[0] == '\'' && v[len(v)-1] == '\'':
		return strings.ReplaceAll(v[1:len(v)-1], `'\''`, `'`)
	case v[0] == '"' && v[len(v)-1] == '"':
		return v[1 : len(v)-1]
	}
	return v
}
