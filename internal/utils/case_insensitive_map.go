package utils

import "strings"

// CaseInsensitiveMap is a read-only string-keyed map whose lookups ignore
// key casing. IAM condition context keys are matched this way.
type CaseInsensitiveMap[T any] struct {
	entries map[string]T
}

func NewCaseInsensitiveMap[T any](from *map[string]T) *CaseInsensitiveMap[T] {
	ciMap := &CaseInsensitiveMap[T]{entries: make(map[string]T)}
	if from == nil {
		return ciMap
	}
	for key, value := range *from {
		ciMap.entries[strings.ToLower(key)] = value
	}
	return ciMap
}

func (m *CaseInsensitiveMap[T]) Get(key string) (T, bool) {
	value, ok := m.entries[strings.ToLower(key)]
	return value, ok
}
