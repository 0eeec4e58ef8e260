// Package tags provides helpers over osm.Tags, the key/value dictionary
// carried by every node and edge in the crossroad graph.
package tags

import (
	"sort"
	"strconv"

	"github.com/paulmach/osm"
)

// FromMap builds an osm.Tags slice from a plain map, sorted by key so that
// two maps with the same content always produce the same Tags value.
func FromMap(m map[string]string) osm.Tags {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(osm.Tags, 0, len(m))
	for _, k := range keys {
		out = append(out, osm.Tag{Key: k, Value: m[k]})
	}
	return out
}

// Has reports whether the tag set carries the given key at all.
func Has(t osm.Tags, key string) bool {
	for _, tg := range t {
		if tg.Key == key {
			return true
		}
	}
	return false
}

// Int parses a tag value as an integer, returning ok=false on a missing or
// non-numeric tag (InvalidTag territory — callers fall back to a default).
func Int(t osm.Tags, key string) (value int, ok bool) {
	v := t.Find(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float parses a tag value as a float64, returning ok=false on a missing or
// non-numeric tag.
func Float(t osm.Tags, key string) (value float64, ok bool) {
	v := t.Find(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Bool interprets common OSM boolean spellings ("yes", "true", "1").
func Bool(t osm.Tags, key string) bool {
	switch t.Find(key) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
