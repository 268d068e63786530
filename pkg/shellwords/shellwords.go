// Package shellwords splits a single line of input into shell-style words.
//
// Splitting follows POSIX word-splitting rules for quoting: whitespace
// separates words outside quotes, single quotes suppress all escaping until
// the matching quote, and double quotes permit backslash-escaping of the
// double quote and the backslash itself. No expansion is performed; the
// result is purely lexical, so identical input always yields identical
// tokens regardless of the process environment.
package shellwords

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"mvdan.cc/sh/v3/syntax"
)

// ErrUnterminatedQuote is returned when the input opens a quote that is
// never closed. Callers decide how to route such input; Split never guesses
// at the writer's intent.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Split breaks input into an ordered sequence of words. Quote characters
// are stripped and escapes resolved, but word order and count are exactly
// what shell word-splitting would produce. Empty or all-whitespace input
// yields a nil slice and no error.
func Split(input string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	haveWord := false

	flush := func() {
		if !haveWord {
			return
		}
		tokens = append(tokens, cur.String())
		cur.Reset()
		haveWord = false
	}

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			flush()

		case r == '\\':
			// Outside quotes a backslash escapes the next character.
			// A trailing backslash is kept literally; a single line of
			// interactive input has no continuation line to join.
			if i+1 < len(runes) {
				i++
			}
			cur.WriteRune(runes[i])
			haveWord = true

		case r == '\'':
			i++
			start := i
			for i < len(runes) && runes[i] != '\'' {
				i++
			}
			if i == len(runes) {
				return nil, ErrUnterminatedQuote
			}
			cur.WriteString(string(runes[start:i]))
			haveWord = true

		case r == '"':
			i++
			closed := false
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\') {
					cur.WriteRune(runes[i+1])
					i += 2
					continue
				}
				if runes[i] == '"' {
					closed = true
					break
				}
				cur.WriteRune(runes[i])
				i++
			}
			if !closed {
				return nil, ErrUnterminatedQuote
			}
			haveWord = true

		default:
			cur.WriteRune(r)
			haveWord = true
		}
	}
	flush()

	return tokens, nil
}

// Join reassembles tokens into a single line, quoting each token so that
// Split(Join(tokens)) returns the same sequence. Quoting style follows
// bash conventions via the shell syntax package.
func Join(tokens []string) (string, error) {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		q, err := syntax.Quote(tok, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("quoting token %q: %w", tok, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}
