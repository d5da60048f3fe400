package models

import (
	"strings"
)

// Tag names are globally unique, stored trimmed and lower-cased. Tags are
// created lazily on first use and never deleted here; only task-tag links go
// away when a task does.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:64;uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

// NormalizeTagName folds a raw tag string to its canonical form. Returns ""
// for blank input.
func NormalizeTagName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeTagNames normalizes, drops blanks and de-duplicates while keeping
// first-seen order.
func NormalizeTagNames(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		name := NormalizeTagName(r)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
