package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultExcludes are lockfiles left out of the summary and diff sent to the model
var DefaultExcludes = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
	"Cargo.lock",
	"go.sum",
	"poetry.lock",
	"composer.lock",
	"Gemfile.lock",
}

// FileStatus is one line of `git diff --cached --name-status`
type FileStatus struct {
	Status string // A, M, D, R100, ...
	Path   string
}

// FileStat is one line of `git diff --cached --numstat`
type FileStat struct {
	Path    string
	Added   int
	Deleted int
	Binary  bool
}

// Executor defines the interface for git command execution
type Executor interface {
	// IsRepository reports whether the working directory is inside a git work tree
	IsRepository(ctx context.Context) bool

	// StagedStatus returns the status marker of every staged path
	StagedStatus(ctx context.Context, excludes []string) ([]FileStatus, error)

	// StagedNumstat returns added/deleted line counts of every staged path
	StagedNumstat(ctx context.Context, excludes []string) ([]FileStat, error)

	// StagedDiff returns the diff of staged changes
	StagedDiff(ctx context.Context, excludes []string) (string, error)

	// Commit executes a git commit with the given message
	Commit(ctx context.Context, message string) error
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// pathspec limits a command to the whole tree minus the excluded patterns.
// Each pattern is excluded at the top level and in every subdirectory.
func pathspec(excludes []string) []string {
	args := []string{"--", ":/"}
	for _, p := range excludes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		args = append(args, ":(top,exclude)"+p, ":(top,exclude)*/"+p)
	}
	return args
}

// IsRepository reports whether the working directory is inside a git work tree
func (e *DefaultExecutor) IsRepository(ctx context.Context) bool {
	out, err := e.runGit(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// StagedStatus returns the status marker of every staged path
func (e *DefaultExecutor) StagedStatus(ctx context.Context, excludes []string) ([]FileStatus, error) {
	args := append([]string{"diff", "--cached", "--name-status", "-z"}, pathspec(excludes)...)
	output, err := e.runGit(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseNameStatus(output), nil
}

// StagedNumstat returns added/deleted line counts of every staged path
func (e *DefaultExecutor) StagedNumstat(ctx context.Context, excludes []string) ([]FileStat, error) {
	args := append([]string{"diff", "--cached", "--numstat", "-z"}, pathspec(excludes)...)
	output, err := e.runGit(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseNumstat(output), nil
}

// StagedDiff returns the diff of staged changes
func (e *DefaultExecutor) StagedDiff(ctx context.Context, excludes []string) (string, error) {
	args := append([]string{"diff", "--cached"}, pathspec(excludes)...)
	return e.runGit(ctx, args...)
}

// Commit executes a git commit with the given message
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	_, err := e.runGit(ctx, "commit", "-m", message)
	return err
}

// parseNameStatus reads "--name-status -z" output: a status field followed by
// one path, or by the source and destination path for renames and copies.
func parseNameStatus(output string) []FileStatus {
	var files []FileStatus
	fields := strings.Split(output, "\x00")
	for i := 0; i < len(fields); i++ {
		status := strings.TrimSpace(fields[i])
		if status == "" {
			continue
		}
		paths := 1
		if status[0] == 'R' || status[0] == 'C' {
			paths = 2
		}
		if i+paths >= len(fields) {
			break
		}
		// Keep the destination path of a rename or copy
		files = append(files, FileStatus{Status: status, Path: fields[i+paths]})
		i += paths
	}
	return files
}

// parseNumstat reads "--numstat -z" output. A rename or copy leaves the path
// field empty and sends the source and destination path as the next two fields.
func parseNumstat(output string) []FileStat {
	var stats []FileStat
	fields := strings.Split(output, "\x00")
	for i := 0; i < len(fields); i++ {
		counts := strings.SplitN(strings.TrimSpace(fields[i]), "\t", 3)
		if len(counts) < 3 {
			continue
		}
		path := counts[2]
		if path == "" {
			if i+2 >= len(fields) {
				break
			}
			path = fields[i+2]
			i += 2
		}
		stat := FileStat{Path: path}
		// Binary files report "-" for both counts
		if counts[0] == "-" || counts[1] == "-" {
			stat.Binary = true
		} else {
			stat.Added, _ = strconv.Atoi(counts[0])
			stat.Deleted, _ = strconv.Atoi(counts[1])
		}
		stats = append(stats, stat)
	}
	return stats
}
