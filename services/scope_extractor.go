package services

import (
	"regexp"
	"strings"
)

// Scraped journal pages interleave the aims-and-scope narrative with
// navigation chrome. Extraction is best-effort: a marker pass first, then a
// sentence filter, and an empty string when neither finds anything.

// Markers are tried in this priority order, not in document order.
var scopeMarkers = []string{"Aims and Scope", "Scope", "About"}

// Everything from the first trailing-navigation marker onwards is dropped.
var scopeEndMarkers = []string{
	"Join the conversation",
	"Enter Journal",
	"Related journals",
	"Homepage",
	"How to publish",
	"Contact",
	"Quartiles",
}

// Sentences carrying any of these tokens are navigation or metadata, not scope.
var scopeSkipTokens = []string{"click", "login", "subscribe", "issn", "homepage"}

// Sentences kept by the fallback must carry at least one of these tokens.
var scopeKeepTokens = []string{"publishes", "journal", "research", "scope", "covers", "dedicated", "focuses"}

const (
	// Marker hits shorter than this are treated as not found.
	minScopeLength = 50
	// The fallback concatenates at most this many surviving sentences.
	maxFallbackSentences = 5
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractScopeDescription isolates the scope narrative from raw scraped page
// text. An empty result means "no scope available", not an error.
func ExtractScopeDescription(raw string) string {
	if raw == "" {
		return ""
	}

	for _, marker := range scopeMarkers {
		idx := strings.Index(raw, marker)
		if idx < 0 {
			continue
		}
		text := strings.TrimSpace(raw[idx+len(marker):])

		for _, end := range scopeEndMarkers {
			if endIdx := strings.Index(text, end); endIdx >= 0 {
				text = text[:endIdx]
			}
		}

		text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
		if len(text) > minScopeLength {
			return text
		}
	}

	var descriptive []string
	for _, sentence := range splitSentences(raw) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		if containsAny(lower, scopeSkipTokens) {
			continue
		}
		if !containsAny(lower, scopeKeepTokens) {
			continue
		}
		descriptive = append(descriptive, sentence)
		if len(descriptive) == maxFallbackSentences {
			break
		}
	}

	return strings.Join(descriptive, " ")
}

// splitSentences splits after '.', '?' or '!' when followed by whitespace,
// keeping the terminator with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		switch runes[i] {
		case '.', '?', '!':
			next := runes[i+1]
			if next == ' ' || next == '\t' || next == '\n' || next == '\r' {
				sentences = append(sentences, string(runes[start:i+1]))
				start = i + 1
			}
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

func containsAny(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}
