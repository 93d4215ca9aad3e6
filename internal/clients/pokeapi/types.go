package pokeapi

import (
	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
)

// namedResource is the {name, url} pair the gateway uses for every reference
type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// listResponse is the body of GET /pokemon and GET /type
type listResponse struct {
	Count   int             `json:"count"`
	Results []namedResource `json:"results"`
}

// entryResponse is the body of GET /pokemon/{name}
type entryResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
}

// categoryResponse is the body of GET /type/{name}
type categoryResponse struct {
	Name    string `json:"name"`
	Pokemon []struct {
		Pokemon namedResource `json:"pokemon"`
	} `json:"pokemon"`
}

func convertEntryToDetail(in *entryResponse) *pokedex.EntryDetail {
	detail := &pokedex.EntryDetail{
		ID:         in.ID,
		Name:       in.Name,
		SpriteURL:  in.Sprites.FrontDefault,
		Categories: make([]string, 0, len(in.Types)),
		Abilities:  make([]string, 0, len(in.Abilities)),
		Stats:      make([]pokedex.Stat, 0, len(in.Stats)),
	}
	for _, t := range in.Types {
		detail.Categories = append(detail.Categories, t.Type.Name)
	}
	for _, a := range in.Abilities {
		detail.Abilities = append(detail.Abilities, a.Ability.Name)
	}
	for _, s := range in.Stats {
		detail.Stats = append(detail.Stats, pokedex.Stat{
			Name:      s.Stat.Name,
			BaseValue: s.BaseStat,
		})
	}
	return detail
}

func convertSummaries(in []namedResource) []pokedex.EntrySummary {
	out := make([]pokedex.EntrySummary, 0, len(in))
	for _, r := range in {
		out = append(out, pokedex.EntrySummary{Name: r.Name, URL: r.URL})
	}
	return out
}

func convertCategories(in []namedResource) []pokedex.Category {
	out := make([]pokedex.Category, 0, len(in))
	for _, r := range in {
		out = append(out, pokedex.Category{Name: r.Name, URL: r.URL})
	}
	return out
}

func convertMembers(in *categoryResponse) []pokedex.EntrySummary {
	out := make([]pokedex.EntrySummary, 0, len(in.Pokemon))
	for _, p := range in.Pokemon {
		out = append(out, pokedex.EntrySummary{Name: p.Pokemon.Name, URL: p.Pokemon.URL})
	}
	return out
}
