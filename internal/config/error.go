// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// ConfigError aggregates configuration errors. Missing entries are
// either a bare variable name or "NAME: message" when the placeholder
// carried a :?message annotation.
type ConfigError struct {
	Path    string   // Config file path
	Missing []string // Unresolved environment variables
	Errors  []string // Validation errors
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "%s:\n", e.Path)
	}

	if len(e.Missing) > 0 {
		b.WriteString("missing environment variables:\n")
		for _, m := range e.Missing {
			fmt.Fprintf(&b, "  - %s\n", m)
		}
	}

	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// HasErrors returns true if there are any errors.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
