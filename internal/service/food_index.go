package service

import (
	"golang.org/x/text/cases"
)

// FoodIndex maps reference dataset identifiers to display names. It is built
// once per request and read-only afterwards.
//
// Lookups are case-insensitive exact matches under full Unicode case folding,
// so "strasse" also matches "Straße". When several entries share a folded
// name, the lexicographically lowest identifier wins.
type FoodIndex struct {
	names  map[string]string
	byName map[string]string
}

// NewFoodIndex builds an index from identifier → display name entries
func NewFoodIndex(entries map[string]string) *FoodIndex {
	fold := cases.Fold()
	idx := &FoodIndex{
		names:  make(map[string]string, len(entries)),
		byName: make(map[string]string, len(entries)),
	}
	for id, name := range entries {
		idx.names[id] = name
		if name == "" {
			continue
		}
		key := fold.String(name)
		if existing, ok := idx.byName[key]; !ok || id < existing {
			idx.byName[key] = id
		}
	}
	return idx
}

// Lookup returns the identifier of the entry whose display name matches name
func (i *FoodIndex) Lookup(name string) (string, bool) {
	if i == nil || name == "" {
		return "", false
	}
	id, ok := i.byName[cases.Fold().String(name)]
	return id, ok
}

// Name returns the display name stored for id
func (i *FoodIndex) Name(id string) (string, bool) {
	if i == nil {
		return "", false
	}
	name, ok := i.names[id]
	return name, ok
}

// Len returns the number of entries in the index
func (i *FoodIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.names)
}
