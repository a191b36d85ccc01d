package msiexec

import (
	"strings"
	"unicode"
)

// Property formats a public MSI property assignment. Values holding whitespace
// or a double quote are wrapped in double quotes with every embedded quote
// doubled, which is how msiexec expects them on its command line.
func Property(key, value string) string {
	if !needsQuoting(value) {
		return key + "=" + value
	}
	return key + `="` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func needsQuoting(value string) bool {
	return strings.ContainsFunc(value, unicode.IsSpace) || strings.Contains(value, `"`)
}

// quoteArg wraps a command line token, typically a path, in double quotes
// when it contains whitespace. Windows paths can not contain double quotes.
func quoteArg(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsFunc(arg, unicode.IsSpace) {
		return arg
	}
	return `"` + arg + `"`
}
