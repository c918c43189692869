package core

// filename.go renders user-supplied filename patterns into filesystem-safe
// names. Placeholders have the fixed form {key}; recognized keys are replaced
// in a single left-to-right scan, so a substituted value that itself contains
// a literal {key} token is never expanded again.

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FallbackFilename is returned when sanitization leaves nothing usable.
const FallbackFilename = "file"

// filenameKeys is the fixed placeholder set recognized in filename patterns.
// Unknown {...} tokens pass through unchanged.
var filenameKeys = map[string]bool{
	"emp_name":     true,
	"city":         true,
	"state":        true,
	"joining_date": true,
	"index":        true,
}

var (
	pathSeparators = regexp.MustCompile(`[\\/]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	reservedChars  = regexp.MustCompile(`[:*?"<>|]+`)
)

// dateLayouts are tried in order when formatting the joining date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-01-2006",
	"02/01/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// RenderFilename substitutes row fields into pattern and sanitizes the result.
// It is a pure function: the same (pattern, row, ordinal) always yields the
// same name, and every input produces a valid non-empty filename.
func RenderFilename(pattern string, row Row, ordinal int) string {
	values := filenameValues(row, ordinal)

	var b strings.Builder
	b.Grow(len(pattern))

	for i := 0; i < len(pattern); {
		open := strings.IndexByte(pattern[i:], '{')
		if open < 0 {
			b.WriteString(pattern[i:])
			break
		}
		open += i
		b.WriteString(pattern[i:open])

		closing := strings.IndexByte(pattern[open:], '}')
		if closing < 0 {
			b.WriteString(pattern[open:])
			break
		}
		closing += open

		key := pattern[open+1 : closing]
		if filenameKeys[key] {
			b.WriteString(values[key])
		} else {
			b.WriteString(pattern[open : closing+1])
		}
		i = closing + 1
	}

	return SanitizeFilename(b.String())
}

// SanitizeFilename makes a string safe for use as a file base name.
// Path separators collapse into a single hyphen, whitespace runs into one
// space, and characters Windows filesystems reject are stripped.
func SanitizeFilename(name string) string {
	name = pathSeparators.ReplaceAllString(name, "-")
	name = strings.TrimSpace(whitespaceRuns.ReplaceAllString(name, " "))
	name = reservedChars.ReplaceAllString(name, "")
	if name == "" {
		return FallbackFilename
	}
	return name
}

// filenameValues resolves the placeholder values for one row.
func filenameValues(row Row, ordinal int) map[string]string {
	return map[string]string{
		"emp_name":     strings.TrimSpace(row.Get("emp_name")),
		"city":         strings.TrimSpace(row.Get("city")),
		"state":        strings.TrimSpace(row.Get("state")),
		"joining_date": FormatDate(row.Get("joining_date")),
		"index":        strconv.Itoa(ordinal),
	}
}

// FormatDate parses a date value and formats it as DD-MM-YYYY.
// On parse failure it degrades to the raw textual form; date formatting
// never fails a render.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02-01-2006")
		}
	}
	return raw
}

// Pronoun classifies a gender indicator into a possessive pronoun.
// The tokens "male" and "m" (case-insensitive) map to "his"; anything else,
// including empty, maps to "her". This is a default-else policy, not a
// binary-exhaustive mapping.
func Pronoun(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male", "m":
		return "his"
	default:
		return "her"
	}
}

// TemplateContext builds the full field context for document rendering:
// all required columns plus the derived his_or_her pronoun.
func TemplateContext(row Row, ordinal int) map[string]string {
	ctx := filenameValues(row, ordinal)
	ctx["address"] = strings.TrimSpace(row.Get("address"))
	ctx["his_or_her"] = Pronoun(row.Get("gender"))
	return ctx
}
