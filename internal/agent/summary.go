package agent

import (
	"fmt"
	"strings"

	"github.com/huimingz/aicommit/internal/git"
)

// BuildChangeSummary renders staged status and line counts as one overview block
func BuildChangeSummary(status []git.FileStatus, stats []git.FileStat) string {
	byPath := make(map[string]git.FileStat, len(stats))
	for _, s := range stats {
		byPath[s.Path] = s
	}

	var added, deleted int
	var lines []string
	for _, f := range status {
		line := fmt.Sprintf("%-4s %s", f.Status, f.Path)
		if s, ok := byPath[f.Path]; ok {
			if s.Binary {
				line += " (binary)"
			} else {
				line += fmt.Sprintf(" (+%d -%d)", s.Added, s.Deleted)
				added += s.Added
				deleted += s.Deleted
			}
		}
		lines = append(lines, line)
	}

	noun := "files"
	if len(status) == 1 {
		noun = "file"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Changed Files (%d %s, +%d -%d)\n", len(status), noun, added, deleted)
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
