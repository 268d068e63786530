package commandindex

// builtinCommands are names recognized regardless of what PATH discovery
// finds: shell builtins and control words plus a handful of tools that are
// effectively universal on the machines this library targets. They form the
// floor of every snapshot; a build where every other source fails still
// recognizes these.
var builtinCommands = []string{
	// Shell builtins and control words
	"alias", "bg", "bind", "break", "builtin", "case", "cd", "command",
	"compgen", "complete", "continue", "declare", "dirs", "disown", "echo",
	"enable", "eval", "exec", "exit", "export", "false", "fc", "fg",
	"getopts", "hash", "help", "history", "if", "jobs", "kill", "let",
	"local", "logout", "popd", "printf", "pushd", "pwd", "read", "readonly",
	"return", "set", "shift", "shopt", "source", "suspend", "test", "times",
	"trap", "true", "type", "typeset", "ulimit", "umask", "unalias",
	"unset", "wait", "which", "while", "[",

	// Common tools assumed present
	"apt", "brew", "cat", "chmod", "clear", "cp", "dnf", "docker", "find",
	"git", "grep", "mkdir", "mv", "pacman", "rm", "ssh", "sudo", "yum",
}

// Builtins returns a copy of the fixed builtin/common-tool name list.
func Builtins() []string {
	return append([]string(nil), builtinCommands...)
}
