package paths

import (
	"os"
	"path/filepath"
)

// Resolve picks a usable directory: it first tries to create preferred and
// falls back to ~/.gatekeeper/<fallbackRel> when that fails, for example when
// an unprivileged user cannot write under /var/log.
func Resolve(preferred string, fallbackRel string) (string, error) {
	if err := os.MkdirAll(preferred, 0o755); err == nil {
		return preferred, nil
	}

	fallbackDir := "."
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		fallbackDir = filepath.Join(home, ".gatekeeper")
	}

	fallbackPath := filepath.Join(fallbackDir, fallbackRel)
	if err := os.MkdirAll(fallbackPath, 0o755); err != nil {
		return "", err
	}
	return fallbackPath, nil
}
