package cleanup

import (
	"os"
	"strings"
)

// Env is a snapshot of the process environment.
type Env map[string]string

// EnvFromOS snapshots the current process environment.
func EnvFromOS() Env {
	return EnvFromList(os.Environ())
}

// EnvFromList builds an Env from KEY=VALUE pairs. Later duplicates win.
func EnvFromList(environ []string) Env {
	env := make(Env, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Get returns the value of key, or "" when unset.
func (e Env) Get(key string) string {
	return e[key]
}

// Has reports whether key is set to a non-empty value.
func (e Env) Has(key string) bool {
	return e[key] != ""
}
