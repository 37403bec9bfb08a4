package utils

import "strings"

// NormalizeTags flattens tag input into plain strings. Items may be strings
// or tag-picker objects of the form {"value": ..., "label": ...}; value wins
// over label. Blank and repeated entries are dropped.
func NormalizeTags(items []any) []string {
	tags := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		var tag string
		switch v := item.(type) {
		case string:
			tag = v
		case map[string]any:
			if value, ok := v["value"].(string); ok && strings.TrimSpace(value) != "" {
				tag = value
			} else if label, ok := v["label"].(string); ok {
				tag = label
			}
		}
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
