package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SecretKeys are the only keys exported from the secrets file.
var SecretKeys = []string{"OPENAI_API_KEY", "OPENAI_PROJECT", "GEMINI_API_KEY"}

// LoadSecrets reads a flat YAML map and exports the known keys into the
// process environment. Variables already set win. Returns the exported keys.
func LoadSecrets(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var exported []string
	for _, k := range SecretKeys {
		v, ok := raw[k]
		if !ok || v == "" {
			continue
		}
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return exported, err
		}
		exported = append(exported, k)
	}
	sort.Strings(exported)
	return exported, nil
}
