// Package monitoring holds the survey record store of the hajj ecosystem
// monitoring program: typed records per entity kind, the collection store and
// the identity broadcast that keeps survey header fields in sync.
package monitoring

import (
	"fmt"
	"strings"
)

// Kind enumerates the closed set of entity kinds tracked by the program.
type Kind string

const (
	KindSpice      Kind = "bumbu"
	KindRice       Kind = "beras"
	KindRTE        Kind = "rte"
	KindTenant     Kind = "tenant"
	KindExpedition Kind = "ekspedisi"
	KindTelecom    Kind = "telco"
)

// Kinds returns every entity kind in display order.
func Kinds() []Kind {
	return []Kind{KindSpice, KindRice, KindRTE, KindTenant, KindExpedition, KindTelecom}
}

// Location identifies the city a spice collection was surveyed in.
type Location string

const (
	LocationMakkah  Location = "Makkah"
	LocationMadinah Location = "Madinah"
)

// Collection names one in-memory record collection. Spice has two
// collections, one per location; every other kind has exactly one.
type Collection string

const (
	CollectionSpiceMakkah  Collection = "bumbu_makkah"
	CollectionSpiceMadinah Collection = "bumbu_madinah"
	CollectionRice         Collection = "rice"
	CollectionRTE          Collection = "rte"
	CollectionTenant       Collection = "tenant"
	CollectionExpedition   Collection = "expedition"
	CollectionTelecom      Collection = "telecom"
)

// Collections lists every collection in quick-search scan order.
func Collections() []Collection {
	return []Collection{
		CollectionSpiceMakkah,
		CollectionSpiceMadinah,
		CollectionRice,
		CollectionRTE,
		CollectionTenant,
		CollectionExpedition,
		CollectionTelecom,
	}
}

// Kind reports the entity kind stored in the collection.
func (c Collection) Kind() Kind {
	switch c {
	case CollectionSpiceMakkah, CollectionSpiceMadinah:
		return KindSpice
	case CollectionRice:
		return KindRice
	case CollectionRTE:
		return KindRTE
	case CollectionTenant:
		return KindTenant
	case CollectionExpedition:
		return KindExpedition
	case CollectionTelecom:
		return KindTelecom
	default:
		return ""
	}
}

// Location returns the survey city for spice collections and "" otherwise.
func (c Collection) Location() Location {
	switch c {
	case CollectionSpiceMakkah:
		return LocationMakkah
	case CollectionSpiceMadinah:
		return LocationMadinah
	default:
		return ""
	}
}

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	return c.Kind() != ""
}

// ParseCollection resolves a collection name case-insensitively.
func ParseCollection(raw string) (Collection, error) {
	c := Collection(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, raw)
	}
	return c, nil
}

// CollectionsOf returns the collections holding records of the given kind.
func CollectionsOf(kind Kind) []Collection {
	var out []Collection
	for _, c := range Collections() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}
