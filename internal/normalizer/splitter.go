package normalizer

import (
	"slices"
	"strings"

	"titlecatalog/internal/models"
	"titlecatalog/pkg/utils"
)

// ValueDelimiter separates entries in multi-value columns.
const ValueDelimiter = ","

// SplitValues splits a multi-value field into trimmed entries. Empty
// entries are dropped; blank text yields none.
func SplitValues(text string) []string {
	if !strings.Contains(text, ValueDelimiter) {
		if value := utils.TrimWhitespace(text); value != "" {
			return []string{value}
		}

		return nil
	}

	parts := strings.Split(text, ValueDelimiter)
	values := make([]string, 0, len(parts))

	for _, part := range parts {
		if value := utils.TrimWhitespace(part); value != "" {
			values = append(values, value)
		}
	}

	return values
}

// UniqueValues returns the sorted, deduplicated union of the entries of
// column across all titles.
func UniqueValues(titles []models.Title, column string) []string {
	seen := make(map[string]struct{})

	for i := range titles {
		for _, value := range SplitValues(titles[i].Value(column)) {
			seen[value] = struct{}{}
		}
	}

	return sortedKeys(seen)
}

// Canonicalize deduplicates and sorts values.
func Canonicalize(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}

	slices.Sort(out)

	return out
}
