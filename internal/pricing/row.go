package pricing

import (
	"strconv"
	"strings"
)

// Row is one parsed CSV record keyed by header column name.
type Row map[string]string

// Get returns the trimmed value for the first key that has one.
func (r Row) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// Float returns the first key that parses as a finite number, else def.
func (r Row) Float(def float64, keys ...string) float64 {
	for _, k := range keys {
		v := strings.TrimSpace(r[k])
		if v == "" {
			continue
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

// FirstFloat returns the first non-nil value, or nil. It is the typed
// "first non-null of [a,b,c]" helper used for reference columns that have
// been renamed across schema versions.
func FirstFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// FirstString returns the first non-nil, non-empty value, or nil.
func FirstString(vals ...*string) *string {
	for _, v := range vals {
		if v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}
