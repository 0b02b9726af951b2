// Package confmap builds layered key/value configuration from environment
// variables, JSON files, JSON strings and key=value pairs.
package confmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Map is a flat configuration object with lower snake case keys
type Map map[string]any

// Sources lists the explicit configuration inputs, in increasing precedence
type Sources struct {
	File string   // Path to a JSON file
	JSON string   // Inline JSON object
	KV   []string // key=value pairs
}

// ParseKV parses a key=value pair. The value is kept as written;
// the typed accessors of Map interpret it.
func ParseKV(kvPair string) (string, string, error) {
	parts := strings.SplitN(kvPair, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid format, expected key=value: %s", kvPair)
	}

	key := strings.TrimSpace(parts[0])
	if key == "" {
		return "", "", fmt.Errorf("empty key in key=value pair")
	}

	return key, strings.TrimSpace(parts[1]), nil
}

// ParseJSON parses a JSON object
func ParseJSON(jsonStr string) (Map, error) {
	result, err := decodeObject([]byte(jsonStr))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	return result, nil
}

// ParseFile reads and parses a JSON object from a file
func ParseFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in file %s: %w", path, err)
	}
	return result, nil
}

// decodeObject keeps numbers as json.Number so their text survives
func decodeObject(data []byte) (Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var result Map
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}

// FromEnv collects configuration from the PREFIX variable (a JSON object)
// and from PREFIX_* variables, the latter taking precedence.
// An unparsable PREFIX value is ignored.
func FromEnv(prefix string) Map {
	result := make(Map)

	if jsonStr := os.Getenv(prefix); jsonStr != "" {
		if parsed, err := ParseJSON(jsonStr); err == nil {
			maps.Copy(result, parsed)
		}
	}

	envPrefix := prefix + "_"
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
		if key == "" {
			continue
		}
		result[key] = value
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// Merge merges maps, later maps override earlier ones
func Merge(configs ...Map) Map {
	result := make(Map)
	for _, m := range configs {
		maps.Copy(result, m)
	}
	return result
}

// Build merges all sources with precedence env < file < JSON < kv pairs
func Build(envPrefix string, src Sources) (Map, error) {
	layers := []Map{FromEnv(envPrefix)}

	if src.File != "" {
		fileConf, err := ParseFile(src.File)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileConf)
	}

	if src.JSON != "" {
		jsonConf, err := ParseJSON(src.JSON)
		if err != nil {
			return nil, err
		}
		layers = append(layers, jsonConf)
	}

	if len(src.KV) > 0 {
		kvConf := make(Map)
		for _, kv := range src.KV {
			key, value, err := ParseKV(kv)
			if err != nil {
				return nil, err
			}
			kvConf[key] = value
		}
		layers = append(layers, kvConf)
	}

	return Merge(layers...), nil
}

// String returns the value for key as a string, formatting numbers and booleans
func (m Map) String(key string) (string, bool) {
	switch v := m[key].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// StringOr returns the string value for key, or def when it is not set
func (m Map) StringOr(key, def string) string {
	if v, ok := m.String(key); ok {
		return v
	}
	return def
}

// Bool returns the boolean value for key, or def when it is unset or unparsable.
// Strings follow strconv.ParseBool, numbers are true unless zero.
func (m Map) Bool(key string, def bool) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f != 0
		}
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Duration returns the duration value for key, or def when it is unset
func (m Map) Duration(key string, def time.Duration) (time.Duration, error) {
	s, ok := m.String(key)
	if !ok || s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

// StringMap returns a nested object of string values, such as HTTP headers
func (m Map) StringMap(key string) map[string]string {
	nested, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	result := make(map[string]string, len(nested))
	for k, v := range nested {
		result[k] = fmt.Sprint(v)
	}
	return result
}

// Keys returns the keys in sorted order
func (m Map) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}
