package actions

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// AppendFile appends content to the file at path, creating it if needed
func AppendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return f.Close()
}

// SetOutput appends a step output to the GITHUB_OUTPUT file at path
func SetOutput(path, name, value string) error {
	return AppendFile(path, formatOutput(name, value, "ghadelimiter_"+uuid.NewString()))
}

func formatOutput(name, value, delimiter string) string {
	if !strings.ContainsAny(value, "\r\n") {
		return name + "=" + value + "\n"
	}
	return name + "<<" + delimiter + "\n" + value + "\n" + delimiter + "\n"
}
