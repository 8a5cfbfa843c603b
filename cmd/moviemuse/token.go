package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/moviemuse/moviemuse/pkg/client"
)

// tokenPath returns where the CLI keeps its session token. The
// MOVIEMUSE_TOKEN environment variable overrides the stored token
// entirely.
func tokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "moviemuse", "token"), nil
}

func loadToken() string {
	if tok := os.Getenv("MOVIEMUSE_TOKEN"); tok != "" {
		return tok
	}
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0600)
}

func clearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// newClient builds an API client carrying the stored session token,
// if any.
func newClient() *client.Client {
	var opts []client.Option
	if tok := loadToken(); tok != "" {
		opts = append(opts, client.WithToken(tok))
	}
	return client.New(serverURL, opts...)
}
