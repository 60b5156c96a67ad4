package config

import (
	"fmt"
	"os"
	"regexp"
)

// secretRefPattern matches ${scheme:reference} values. Only the env
// scheme is supported; the scheme segment is kept so config files stay
// forward compatible with other providers.
var secretRefPattern = regexp.MustCompile(`^\$\{([a-z]+):([^}]+)\}$`)

// resolveSecret expands a ${env:NAME} reference into the value of the
// named environment variable. Plain values pass through unchanged.
func resolveSecret(value string) (string, error) {
	m := secretRefPattern.FindStringSubmatch(value)
	if m == nil {
		return value, nil
	}
	scheme, ref := m[1], m[2]
	if scheme != "env" {
		return "", fmt.Errorf("unsupported secret scheme %q in %q", scheme, value)
	}
	resolved, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("environment variable %q not set", ref)
	}
	return resolved, nil
}
