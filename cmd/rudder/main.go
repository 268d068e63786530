package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/helmsh/rudder/pkg/classifier"
	"github.com/helmsh/rudder/pkg/commandindex"
	"github.com/helmsh/rudder/pkg/heuristics"
)

var BUILD_VERSION = "dev"

var (
	debugFlag bool
	shellFlag string
)

func main() {
	root := &cobra.Command{
		Use:   "rudder",
		Short: "Route interactive input to a shell or a language interface",
		Long: `rudder classifies a line of input as either an executable shell
invocation or a natural-language utterance, so a hybrid command-line
front end can route it without an explicit prefix.

With a terminal on stdin it starts an interactive demo REPL; otherwise
it reads lines from stdin and prints one verdict per line.`,
		Version:      BUILD_VERSION,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cls := newClassifier(logger)
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return runREPL(logger, cls)
			}
			return classifyLines(os.Stdin, os.Stdout, cls)
		},
	}

	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log classification details to stderr")
	root.PersistentFlags().StringVar(&shellFlag, "shell", "", "shell binary used for alias discovery (default $SHELL)")

	root.AddCommand(newClassifyCmd(), newSuggestCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if debugFlag {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func newClassifier(logger *zap.Logger) *classifier.Classifier {
	return classifier.New(classifier.Options{
		Logger:      logger,
		AliasSource: &commandindex.ShellAliasSource{Shell: shellFlag, Logger: logger},
		Heuristics:  heuristics.LoadUserConfig(),
	})
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <input>...",
		Short: "Print the verdict for one line of input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			input := strings.Join(args, " ")
			if newClassifier(logger).IsShellCommand(input) {
				fmt.Println("command")
			} else {
				fmt.Println("language")
			}
			return nil
		},
	}
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "List known commands starting with a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			for _, name := range newClassifier(logger).Suggestions(args[0]) {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// classifyLines is the non-interactive mode: one input line in, one
// tab-separated verdict out.
func classifyLines(r io.Reader, w io.Writer, cls *classifier.Classifier) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		verdict := "language"
		if cls.IsShellCommand(line) {
			verdict = "command"
		}
		fmt.Fprintf(w, "%s\t%s\n", verdict, line)
	}
	return scanner.Err()
}
