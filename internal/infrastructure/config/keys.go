package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/termnamer/internal/domain"
)

// Get returns the value stored under a dotted key path such as
// "preferences.language".
func Get(cfg domain.Config, keyPath string) (interface{}, error) {
	tree, err := toMap(cfg)
	if err != nil {
		return nil, err
	}
	value, ok := traverse(tree, strings.Split(keyPath, "."))
	if !ok {
		return nil, fmt.Errorf("key %s not found in configuration", keyPath)
	}
	return value, nil
}

// Set returns a copy of cfg with keyPath replaced by value. The value is
// parsed as YAML so "5", "true" and "[a, b]" keep their types; anything
// that does not parse is stored as a literal string.
func Set(cfg domain.Config, keyPath, value string) (domain.Config, error) {
	keys := strings.Split(keyPath, ".")
	for _, k := range keys {
		if k == "" {
			return domain.Config{}, fmt.Errorf("invalid key path %q", keyPath)
		}
	}

	tree, err := toMap(cfg)
	if err != nil {
		return domain.Config{}, err
	}
	setNested(tree, keys, parseValue(value))

	raw, err := yaml.Marshal(tree)
	if err != nil {
		return domain.Config{}, fmt.Errorf("marshal updated config: %w", err)
	}
	var updated domain.Config
	if err := yaml.Unmarshal(raw, &updated); err != nil {
		return domain.Config{}, fmt.Errorf("apply %s: %w", keyPath, err)
	}
	return updated, nil
}

func toMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	tree := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return tree, nil
}

func parseValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil || parsed == nil {
		return input
	}
	return parsed
}

func setNested(root map[string]interface{}, keys []string, value interface{}) {
	current := root
	for _, key := range keys[:len(keys)-1] {
		child, ok := current[key].(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			current[key] = child
		}
		current = child
	}
	current[keys[len(keys)-1]] = value
}

func traverse(node interface{}, keys []string) (interface{}, bool) {
	if len(keys) == 0 {
		return node, true
	}
	m, ok := node.(map[string]interface{})
	if !ok {
		return nil, false
	}
	next, ok := m[keys[0]]
	if !ok {
		return nil, false
	}
	return traverse(next, keys[1:])
}
