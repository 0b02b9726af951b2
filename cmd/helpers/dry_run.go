package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/zinc-sig/firebuild-cache/internal/confmap"
)

// secretKeys are never printed
var secretKeys = []string{"secret", "token", "password", "access_key"}

// PrintBackendInfo prints the cache backend configuration with secrets masked
func PrintBackendInfo(w io.Writer, backend string, conf confmap.Map, dryRun bool) {
	header := "Cache Backend Configuration"
	if dryRun {
		header = "Cache Backend Configuration (DRY RUN)"
	}

	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Backend:        %s\n", displayBackend(backend))
	for _, key := range conf.Keys() {
		value, ok := conf.String(key)
		if !ok {
			value = fmt.Sprint(conf[key])
		}
		if isSecret(key) {
			value = "****"
		}
		fmt.Fprintf(w, "%-15s %s\n", key+":", value)
	}
	fmt.Fprintln(w, "----------------------------------------")
}

func displayBackend(backend string) string {
	if backend == "" {
		return "(none)"
	}
	return backend
}

func isSecret(key string) bool {
	for _, s := range secretKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}
