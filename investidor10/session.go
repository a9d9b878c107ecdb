package investidor10

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const sessionFile = "carteira-i10-session"

func sessionPath() string {
	return filepath.Join(os.TempDir(), sessionFile)
}

// SaveSession stores the laravel_session cookie value for later runs. The
// session file lives in the temp dir; the cookie expires server-side anyway.
func SaveSession(session string) error {
	session = strings.TrimSpace(session)
	if session == "" {
		return fmt.Errorf("empty session")
	}
	if err := os.WriteFile(sessionPath(), []byte(session), 0600); err != nil {
		return fmt.Errorf("cannot save session: %w", err)
	}
	return nil
}

// LoadSession returns the stored session cookie value.
func LoadSession() (string, error) {
	data, err := os.ReadFile(sessionPath())
	if err != nil {
		return "", fmt.Errorf("investidor10 session not found. Please run 'carteira login' first: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
