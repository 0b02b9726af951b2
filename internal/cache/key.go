package cache

import (
	"fmt"
	"strings"
)

// MaxKeyLength is the longest key accepted by the cache service
const MaxKeyLength = 512

// ArchiveExtension is appended to keys to form object names
const ArchiveExtension = ".tar.zst"

// ValidateKey checks a key against the cache service rules
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key validation error: key cannot be empty")
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("key validation error: %s cannot be larger than %d characters", key, MaxKeyLength)
	}
	if strings.Contains(key, ",") {
		return fmt.Errorf("key validation error: %s cannot contain commas", key)
	}
	return nil
}

// ObjectName returns the object name an archive for key is stored under
func ObjectName(key string) string {
	return key + ArchiveExtension
}
