package featureflags

import (
	"os"
	"strings"
)

// Enabled reports whether an operational flag is set via environment
// variable. Flags are read as FLAG_<NAME>=true/1/yes (case-insensitive).
func Enabled(name string) bool {
	v := os.Getenv("FLAG_" + strings.ToUpper(name))
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
