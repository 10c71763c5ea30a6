package agent

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// InstructionsFileName is looked up next to the settings file
const InstructionsFileName = "instructions.md"

// ResolveInstructions returns the instructions text and where it came from.
// An explicit path must be readable; the fallback path is optional.
// Empty files fall through to the built-in template.
func ResolveInstructions(explicitPath, fallbackPath string) (string, string, error) {
	if explicitPath != "" {
		data, err := os.ReadFile(explicitPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read instructions: %w", err)
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			return text, explicitPath, nil
		}
	}

	if fallbackPath != "" {
		data, err := os.ReadFile(fallbackPath)
		switch {
		case err == nil:
			if text := strings.TrimSpace(string(data)); text != "" {
				return text, fallbackPath, nil
			}
		case !errors.Is(err, os.ErrNotExist):
			return "", "", fmt.Errorf("failed to read instructions: %w", err)
		}
	}

	return DefaultInstructions, "built-in", nil
}
