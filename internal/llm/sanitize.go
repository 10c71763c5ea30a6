package llm

import "strings"

const fence = "```"

// SanitizeCompletion strips the wrapping models like to put around a message:
// surrounding whitespace, a leading and a trailing code-fence line, and a single
// leading and trailing backtick.
func SanitizeCompletion(s string) string {
	s = strings.TrimSpace(s)

	lines := strings.Split(s, "\n")
	if len(lines) > 1 {
		if strings.HasPrefix(strings.TrimSpace(lines[0]), fence) {
			lines = lines[1:]
		}
		if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == fence {
			lines = lines[:n-1]
		}
		s = strings.TrimSpace(strings.Join(lines, "\n"))
	} else if strings.HasPrefix(s, fence) && strings.HasSuffix(s, fence) && len(s) >= 2*len(fence) {
		// Single line wrapped as ```message```
		s = strings.TrimSpace(s[len(fence) : len(s)-len(fence)])
	}

	s = strings.TrimPrefix(s, "`")
	s = strings.TrimSuffix(s, "`")
	return strings.TrimSpace(s)
}
