package agent

import (
	"regexp"
	"strings"
)

// ValidTypes is the closed set of Conventional Commits types
var ValidTypes = []string{
	"feat", "fix", "docs", "style", "refactor", "test",
	"chore", "build", "ci", "perf", "revert",
}

// The scope may be empty; subject length is not checked here.
var conventionalSubject = regexp.MustCompile(
	`^(` + strings.Join(ValidTypes, "|") + `)(\([^)]*\))?!?: .+`)

// ValidateMessage reports whether a generated message has the expected shape.
// Relaxed mode only asks for a colon somewhere in the message.
func ValidateMessage(message string, relaxed bool) bool {
	if relaxed {
		return strings.Contains(message, ":")
	}

	subject, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return conventionalSubject.MatchString(strings.TrimRight(subject, "\r"))
}
