package agent

// SystemMessage establishes the assistant's role for chat-style backends
const SystemMessage = `You are an expert software engineer who writes Git commit messages following the Conventional Commits specification. You reply with the commit message only.`

// DefaultInstructions is used when no instructions file is configured
const DefaultInstructions = `Write a Git commit message for the staged changes below, following the Conventional Commits specification.

## Format
<type>[optional scope][!]: <description>

[optional body]

[optional footer(s)]

## Types
- feat: A new feature
- fix: A bug fix
- docs: Documentation only changes
- style: Changes that do not affect the meaning of the code
- refactor: A code change that neither fixes a bug nor adds a feature
- perf: A code change that improves performance
- test: Adding missing tests or correcting existing tests
- build: Changes to the build system or external dependencies
- ci: Changes to CI configuration files and scripts
- chore: Other changes that don't modify src or test files
- revert: Reverts a previous commit

## Rules
1. Keep the subject line under 72 characters
2. Use imperative mood ("add" not "added")
3. Do not end the subject line with a period
4. Add "!" after the type or scope for breaking changes
5. Use a body only when the change needs explaining; describe what and why, not how
6. Pick the scope from the area of the code that changed, or omit it`

// DiffHeader introduces the diff section of the prompt
const DiffHeader = "## Staged Changes (Diff)"

// ContextHeader introduces the user-supplied context section
const ContextHeader = "## Additional Context\nThe developer has provided the following context for this change:"

// ClosingInstruction ends every prompt and restates the output format
const ClosingInstruction = `Reply with the commit message text only: no explanations, no markdown, no code fences. Read the diff carefully: lines starting with "+" were added and lines starting with "-" were removed.`

// TruncationNotice is appended to a diff cut at max_diff_chars
const TruncationNotice = "\n\n[... diff truncated at max_diff_chars; raise the limit or set it to 0 to disable truncation ...]"
