// Package pokedex holds the catalog entities shared by every view
package pokedex

import (
	"fmt"
	"strings"
)

// Stat names as reported by the gateway
const (
	StatHP      = "hp"
	StatAttack  = "attack"
	StatDefense = "defense"
)

// CategoryAll is the catalog pseudo-category meaning "no filter"
const CategoryAll = "all"

// SpriteBaseURL serves the small front sprites addressed by numeric id
const SpriteBaseURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"

// EntrySummary is one row of a collection listing
type EntrySummary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Category is a type grouping; membership is fetched separately
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Stat is a named base value
type Stat struct {
	Name      string
	BaseValue int
}

// EntryDetail is the full record for a single entry
type EntryDetail struct {
	ID         int
	Name       string
	SpriteURL  string
	Categories []string
	Abilities  []string
	Stats      []Stat
}

// Stats is the subset of an entry's base stats that can drive sorting
type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// Value returns the stat selected by key; name and unknown keys yield 0
func (s Stats) Value(key SortKey) int {
	switch key {
	case SortByHP:
		return s.HP
	case SortByAttack:
		return s.Attack
	case SortByDefense:
		return s.Defense
	default:
		return 0
	}
}

// StatsOf extracts hp/attack/defense from a detail by stat name.
// Missing stats stay zero.
func StatsOf(detail *EntryDetail) Stats {
	var out Stats
	if detail == nil {
		return out
	}
	for _, st := range detail.Stats {
		switch st.Name {
		case StatHP:
			out.HP = st.BaseValue
		case StatAttack:
			out.Attack = st.BaseValue
		case StatDefense:
			out.Defense = st.BaseValue
		}
	}
	return out
}

// SortKey selects the field suggestions are ordered by
type SortKey string

// Sort keys
const (
	SortByName    SortKey = "name"
	SortByHP      SortKey = "hp"
	SortByAttack  SortKey = "attack"
	SortByDefense SortKey = "defense"
)

// SortKeys lists the keys in the order the selectors show them
var SortKeys = []SortKey{SortByName, SortByHP, SortByAttack, SortByDefense}

// ParseSortKey falls back to SortByName for anything unrecognized
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByHP, SortByAttack, SortByDefense:
		return k
	default:
		return SortByName
	}
}

// IsStat reports whether the key sorts by a numeric stat
func (k SortKey) IsStat() bool {
	return k == SortByHP || k == SortByAttack || k == SortByDefense
}

// Label is the text shown in the sort selector
func (k SortKey) Label() string {
	switch k {
	case SortByHP:
		return "Sort by HP"
	case SortByAttack:
		return "Sort by Attack"
	case SortByDefense:
		return "Sort by Defense"
	default:
		return "Sort by Name"
	}
}

// SortOrder is the direction of a sort
type SortOrder string

// Sort orders
const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder falls back to SortAscending for anything unrecognized
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == SortDescending {
		return SortDescending
	}
	return SortAscending
}

// IDFromURL returns the final non-empty path segment of a resource locator,
// e.g. "https://pokeapi.co/api/v2/pokemon/4/" yields "4".
func IDFromURL(url string) string {
	parts := strings.FieldsFunc(url, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// SpriteURL builds the small sprite image for a numeric id string
func SpriteURL(id string) string {
	return fmt.Sprintf("%s%s.png", SpriteBaseURL, id)
}

// DisplayName upper-cases the first letter of a name
func DisplayName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
