package testutils

import (
	"fmt"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
)

// Summary builds a listing row with the gateway's URL shape
func Summary(id int, name string) pokedex.EntrySummary {
	return pokedex.EntrySummary{
		Name: name,
		URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", id),
	}
}

// StarterListing is the three-entry base listing used by most scenarios
func StarterListing() []pokedex.EntrySummary {
	return []pokedex.EntrySummary{
		Summary(1, "bulbasaur"),
		Summary(4, "charmander"),
		Summary(7, "squirtle"),
	}
}

// Detail builds an entry detail with hp/attack/defense/speed stats
func Detail(id int, name string, categories []string, hp, attack, defense int) *pokedex.EntryDetail {
	return &pokedex.EntryDetail{
		ID:         id,
		Name:       name,
		SpriteURL:  fmt.Sprintf("https://img.example/%d.png", id),
		Categories: categories,
		Abilities:  []string{"ability-" + name},
		Stats: []pokedex.Stat{
			{Name: pokedex.StatHP, BaseValue: hp},
			{Name: pokedex.StatAttack, BaseValue: attack},
			{Name: pokedex.StatDefense, BaseValue: defense},
			{Name: "speed", BaseValue: 45},
		},
	}
}

// Bulbasaur returns entry #1
func Bulbasaur() *pokedex.EntryDetail {
	d := Detail(1, "bulbasaur", []string{"grass", "poison"}, 45, 49, 49)
	d.Abilities = []string{"overgrow", "chlorophyll"}
	return d
}

// Charmander returns entry #4
func Charmander() *pokedex.EntryDetail {
	d := Detail(4, "charmander", []string{"fire"}, 39, 52, 43)
	d.Abilities = []string{"blaze", "solar-power"}
	return d
}

// Squirtle returns entry #7
func Squirtle() *pokedex.EntryDetail {
	d := Detail(7, "squirtle", []string{"water"}, 44, 48, 65)
	d.Abilities = []string{"torrent", "rain-dish"}
	return d
}

// Categories returns a short type list
func Categories() []pokedex.Category {
	return []pokedex.Category{
		{Name: "normal", URL: "https://pokeapi.co/api/v2/type/1/"},
		{Name: "fire", URL: "https://pokeapi.co/api/v2/type/10/"},
		{Name: "water", URL: "https://pokeapi.co/api/v2/type/11/"},
	}
}
