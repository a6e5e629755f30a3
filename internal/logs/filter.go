package logs

import (
	"encoding/json"
	"strings"
)

// Filter reports whether a log line should be shown.
type Filter func(line string) bool

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

type record struct {
	Level     string `json:"level"`
	Component string `json:"component"`
}

// MinLevel keeps JSON records at or above level. Lines that are not JSON
// records are kept.
func MinLevel(level string) Filter {
	minRank, ok := levelRank[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return nil
	}
	return func(line string) bool {
		rec, ok := decode(line)
		if !ok {
			return true
		}
		rank, known := levelRank[strings.ToLower(rec.Level)]
		return !known || rank >= minRank
	}
}

// Component keeps JSON records whose component field equals name.
func Component(name string) Filter {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return func(line string) bool {
		rec, ok := decode(line)
		return ok && strings.EqualFold(rec.Component, name)
	}
}

// All combines filters; nil entries are ignored.
func All(filters ...Filter) Filter {
	active := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(line string) bool {
		for _, f := range active {
			if !f(line) {
				return false
			}
		}
		return true
	}
}

func decode(line string) (record, bool) {
	var rec record
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return rec, false
	}
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return rec, false
	}
	return rec, true
}
