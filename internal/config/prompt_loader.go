package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultPromptDir is the subdirectory within the user's home directory
// where prompt template overrides live.
const defaultPromptDir = ".config/plume/prompts"

// LoadPromptContent resolves and reads a prompt template override.
// If configuredPath is absolute, it's used directly. If it is relative or
// empty, it's treated as a filename within ~/.config/plume/prompts/; a
// missing override file there is not an error and fallback is returned so
// callers can use the compiled-in default template.
func LoadPromptContent(configuredPath, defaultFilename, fallback string) (string, error) {
	finalPath := configuredPath

	if !filepath.IsAbs(configuredPath) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}

		filename := configuredPath
		if filename == "" {
			filename = defaultFilename
		}
		finalPath = filepath.Join(homeDir, defaultPromptDir, filename)
	}

	promptBytes, err := os.ReadFile(finalPath)
	if err != nil {
		if os.IsNotExist(err) && !filepath.IsAbs(configuredPath) {
			return fallback, nil
		}
		return "", fmt.Errorf("failed to read prompt file '%s': %w", finalPath, err)
	}
	return string(promptBytes), nil
}
