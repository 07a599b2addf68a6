package ui

import (
	"fmt"
	"strings"
)

// StatsLine summarises a session for the exit message, for example
// "rxterm: rx 120 chars, tx 8 chars, filter ^ERR".
func StatsLine(rxChars, txChars int, pattern string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rxterm: rx %d %s, tx %d %s", rxChars, plural(rxChars), txChars, plural(txChars))
	if pattern != "" {
		fmt.Fprintf(&sb, ", filter %s", pattern)
	}
	return sb.String()
}

func plural(n int) string {
	if n == 1 {
		return "char"
	}
	return "chars"
}
