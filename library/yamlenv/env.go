// Package yamlenv provides YAML config values that can be overridden from the
// environment. A value written as ${VAR} or ${VAR:default} is resolved against
// os.Environ at decode time; anything else is parsed literally.
package yamlenv

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Env[T any] struct {
	Value T
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	raw := node.Value

	if strings.HasPrefix(raw, "${") && strings.HasSuffix(raw, "}") {
		expr := raw[2 : len(raw)-1]

		name, def, hasDef := strings.Cut(expr, ":")
		if name == "" {
			return fmt.Errorf("yamlenv: empty variable name in %q", raw)
		}

		val, ok := os.LookupEnv(name)
		if !ok {
			if !hasDef {
				return fmt.Errorf("yamlenv: environment variable %s is not set and has no default", name)
			}
			val = def
		}
		raw = val
	}

	if err := yaml.Unmarshal([]byte(raw), &e.Value); err != nil {
		return fmt.Errorf("yamlenv: parse %q: %w", raw, err)
	}

	return nil
}

func (e *Env[T]) MarshalYAML() (any, error) {
	return e.Value, nil
}
