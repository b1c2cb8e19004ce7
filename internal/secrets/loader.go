// Package secrets resolves API credentials from a file, an inline value or the environment.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a credential may come from. File wins over Value, Value over Env.
type Source struct {
	// Name is used in error messages.
	Name  string
	Value string
	File  string
	// Env names the environment variable consulted when File and Value are empty.
	Env string
}

// Load returns the trimmed credential or an error naming every place that was checked.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%s is not configured (set %s or an api key file)", name, env)
	}

	return "", fmt.Errorf("%s is not configured", name)
}
