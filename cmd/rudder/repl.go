package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/helmsh/rudder/pkg/classifier"
)

// runREPL is the interactive demo loop: every line is classified, command
// verdicts run through a real shell interpreter, language verdicts only
// report the routing decision (no language backend is wired into the demo).
func runREPL(logger *zap.Logger, cls *classifier.Classifier) error {
	sessionID := uuid.New().String()
	logger.Info("rudder session started", zap.String("session_id", sessionID))

	runner, err := interp.New(
		interp.Interactive(true),
		interp.StdIO(os.Stdin, os.Stdout, os.Stderr),
	)
	if err != nil {
		return fmt.Errorf("creating shell runner: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "rudder> ",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistoryLimit:      500,
		HistorySearchFold: true,
		AutoComplete:      &commandCompleter{classifier: cls},
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	parser := syntax.NewParser()
	ctx := context.Background()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "exit", "quit":
			return nil
		case ":refresh":
			cls.Refresh(ctx)
			fmt.Println("rudder: command index refreshed")
			continue
		}

		if !cls.IsShellCommand(input) {
			fmt.Printf("rudder: understood %q as natural language\n", input)
			continue
		}

		file, err := parser.Parse(strings.NewReader(input), "rudder")
		if err != nil {
			fmt.Fprintf(os.Stderr, "rudder: parse error: %v\n", err)
			continue
		}

		if err := runner.Run(ctx, file); err != nil {
			if status, ok := interp.IsExitStatus(err); ok {
				logger.Debug("command exited", zap.Uint8("status", status))
			} else {
				fmt.Fprintf(os.Stderr, "rudder: %v\n", err)
			}
		}
		if runner.Exited() {
			return nil
		}
	}
}

// commandCompleter feeds the classifier's prefix suggestions to readline.
// Only the first word of the line completes; arguments are the shell's
// business, not the router's.
type commandCompleter struct {
	classifier *classifier.Classifier
}

func (c *commandCompleter) Do(line []rune, pos int) ([][]rune, int) {
	prefix := string(line[:pos])
	if strings.ContainsAny(prefix, " \t") {
		return nil, 0
	}

	var candidates [][]rune
	for _, name := range c.classifier.Suggestions(prefix) {
		candidates = append(candidates, []rune(name[len(prefix):]+" "))
	}
	return candidates, len(prefix)
}
