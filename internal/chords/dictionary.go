package chords

import "sort"

// Dictionary maps chord names to opaque fingering descriptors.
type Dictionary interface {
	// Get returns the fingering for name and whether name is known.
	Get(name string) (string, bool)

	// Keys returns every known chord name.
	Keys() []string
}

// MapDictionary is a Dictionary backed by a map.
// The zero value is an empty dictionary.
type MapDictionary map[string]string

// Get returns the fingering for name.
func (d MapDictionary) Get(name string) (string, bool) {
	f, ok := d[name]
	return f, ok
}

// Keys returns the chord names in sorted order.
func (d MapDictionary) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of chords.
func (d MapDictionary) Len() int {
	return len(d)
}

// Merge returns a new dictionary holding d overlaid with other.
// Entries in other win.
func (d MapDictionary) Merge(other MapDictionary) MapDictionary {
	out := make(MapDictionary, len(d)+len(other))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// KeySet is the set of chord names the classifier accepts.
type KeySet map[string]struct{}

// NewKeySet builds a KeySet from names.
func NewKeySet(names ...string) KeySet {
	ks := make(KeySet, len(names))
	for _, n := range names {
		ks[n] = struct{}{}
	}
	return ks
}

// KeysOf builds the KeySet of a dictionary. A nil dictionary yields an empty set.
func KeysOf(d Dictionary) KeySet {
	if d == nil {
		return KeySet{}
	}
	return NewKeySet(d.Keys()...)
}

// Has reports whether name is in the set.
func (ks KeySet) Has(name string) bool {
	_, ok := ks[name]
	return ok
}

// Compile-time interface check.
var _ Dictionary = MapDictionary(nil)
