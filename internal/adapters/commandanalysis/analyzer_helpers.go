package commandanalysis

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const (
	goosWindows          = "windows"
	binSh                = "/bin/sh"
	commandSwitchUnix    = "-c"
	commandSwitchWindows = "/C"
)

// shellMetaChars are the characters that only a shell can interpret.
const shellMetaChars = "|&;<>()$`*?[]{}~#!\n"

// envAssignment matches a leading NAME=value word.
var envAssignment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// shellWords are builtins and keywords that have no executable of their own
// or behave differently outside the shell.
var shellWords = map[string]struct{}{
	".": {}, "alias": {}, "bg": {}, "break": {}, "case": {}, "cd": {}, "command": {},
	"continue": {}, "eval": {}, "exec": {}, "exit": {}, "export": {}, "fg": {},
	"for": {}, "function": {}, "if": {}, "jobs": {}, "read": {}, "readonly": {},
	"return": {}, "select": {}, "set": {}, "shift": {}, "source": {}, "time": {},
	"trap": {}, "type": {}, "ulimit": {}, "umask": {}, "unalias": {}, "unset": {},
	"until": {}, "wait": {}, "while": {},
}

/*
needsShell reports whether the command relies on the shell.

A command needs the shell if it contains control operators, redirection,
parameter or command substitution, glob patterns, tilde expansion, comments
or pipeline negation. Quoted metacharacters count as well.
*/
func needsShell(commandStr string) bool {
	return strings.ContainsAny(commandStr, shellMetaChars)
}

// wordsNeedShell reports whether split words start with an environment
// assignment or a shell builtin or keyword.
func wordsNeedShell(words []string) bool {
	if len(words) == 0 {
		return false
	}
	if envAssignment.MatchString(words[0]) {
		return true
	}
	_, ok := shellWords[words[0]]
	return ok
}

func shellSwitch() string {
	if runtime.GOOS == goosWindows {
		return commandSwitchWindows
	}
	return commandSwitchUnix
}

// DefaultShell returns $SHELL, falling back to /bin/sh, or cmd.exe on Windows.
func DefaultShell() string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv("SystemRoot")
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}
		return filepath.Join(systemRoot, "System32", "cmd.exe")
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return binSh
}
