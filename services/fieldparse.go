package services

import (
	"regexp"
	"strconv"
	"strings"
)

// Field parsers are total: malformed input yields nil or an empty value,
// never an error. "Unknown" is always encoded as nil, not a sentinel string.

var categoryQuartilePattern = regexp.MustCompile(`^(.+?)\s*\((Q[1-4])\)$`)

// parseFloatPointer parses a decimal string that may use either '.' or ','
// as the fractional separator, the way SCImago exports do.
func parseFloatPointer(val string) *float64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	val = strings.ReplaceAll(val, ",", ".")
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseIntPointer returns nil on empty or invalid input; an empty cell is
// distinct from an explicit 0.
func parseIntPointer(val string) *int {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &parsed
}

// splitDelimited splits on the delimiter, trims whitespace, drops empty
// segments and preserves order.
func splitDelimited(val, delimiter string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(val, delimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

// CategoryEntry is one parsed category cell, e.g. "Applied Mathematics (Q1)".
type CategoryEntry struct {
	Name     string  `json:"name"`
	Quartile *string `json:"quartile"`
}

// parseCategoryEntry matches the trailing "(Qn)" only, so category names that
// themselves contain parentheses keep them intact.
func parseCategoryEntry(val string) *CategoryEntry {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	if match := categoryQuartilePattern.FindStringSubmatch(val); match != nil {
		quartile := match[2]
		return &CategoryEntry{Name: strings.TrimSpace(match[1]), Quartile: &quartile}
	}
	return &CategoryEntry{Name: val}
}

// parseCategoryList parses a "Name (Q1); Other Name (Q2)" cell.
func parseCategoryList(val string) []CategoryEntry {
	var entries []CategoryEntry
	for _, part := range splitDelimited(val, ";") {
		if entry := parseCategoryEntry(part); entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries
}

// parseISSNList splits a comma-separated ISSN cell. ISSNs are treated as
// opaque identifiers; no checksum validation.
func parseISSNList(val string) []string {
	return splitDelimited(val, ",")
}

// parseAreaList parses the semicolon-separated subject area cell.
func parseAreaList(val string) []string {
	return splitDelimited(val, ";")
}

// normalizeQuartile returns the quartile label if it is one of Q1..Q4,
// nil otherwise.
func normalizeQuartile(val string) *string {
	val = strings.ToUpper(strings.TrimSpace(val))
	switch val {
	case "Q1", "Q2", "Q3", "Q4":
		return &val
	}
	return nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
