package ranking_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/pkg/ranking"
	"github.com/KirkDiggler/pokedex-web/internal/testutils"
)

type fixedStats map[string]pokedex.Stats

func (f fixedStats) GetStats(ctx context.Context, name string) (pokedex.Stats, error) {
	if err := ctx.Err(); err != nil {
		return pokedex.Stats{}, errors.Canceled(err.Error())
	}
	return f[name], nil
}

func names(entries []pokedex.EntrySummary) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func summaries(ns ...string) []pokedex.EntrySummary {
	out := make([]pokedex.EntrySummary, 0, len(ns))
	for i, n := range ns {
		out = append(out, testutils.Summary(i+1, n))
	}
	return out
}

func TestMatchPrefix_Scenario(t *testing.T) {
	got := ranking.MatchPrefix(testutils.StarterListing(), "ch")
	assert.Equal(t, []string{"charmander"}, names(got))
}

func TestMatchPrefix_IncludedIffPrefix(t *testing.T) {
	entries := summaries("Bulbasaur", "charmander", "CHARIZARD", "squirtle", "mr-mime", "chansey")
	queries := []string{"", "c", "CH", "char", "Charm", "s", "mr-", "x", "bulbasaurs"}

	for _, q := range queries {
		got := ranking.MatchPrefix(entries, q)
		kept := make(map[string]bool, len(got))
		for _, e := range got {
			kept[e.Name] = true
		}
		for _, e := range entries {
			want := strings.HasPrefix(strings.ToLower(e.Name), strings.ToLower(q))
			assert.Equal(t, want, kept[e.Name], "query %q entry %q", q, e.Name)
		}
	}
}

func TestMatchPrefix_NotSubstring(t *testing.T) {
	got := ranking.MatchPrefix(testutils.StarterListing(), "saur")
	assert.Empty(t, got)
}

func TestIntersect_PreservesCandidateOrder(t *testing.T) {
	candidates := summaries("squirtle", "charmander", "bulbasaur", "vulpix")
	members := summaries("vulpix", "charmander", "growlithe")

	got := ranking.Intersect(candidates, members)
	assert.Equal(t, []string{"charmander", "vulpix"}, names(got))
}

func TestByName_Order(t *testing.T) {
	entries := summaries("squirtle", "Bulbasaur", "charmander", "abra")

	asc := ranking.ByName(entries, pokedex.SortAscending)
	assert.Equal(t, []string{"abra", "Bulbasaur", "charmander", "squirtle"}, names(asc))

	desc := ranking.ByName(entries, pokedex.SortDescending)
	assert.Equal(t, []string{"squirtle", "charmander", "Bulbasaur", "abra"}, names(desc))

	assert.Equal(t, []string{"squirtle", "Bulbasaur", "charmander", "abra"}, names(entries), "input must not be mutated")
}

func TestByName_Idempotent(t *testing.T) {
	entries := summaries("porygon-z", "porygon2", "porygon", "nidoran-f", "nidoran-m", "mew", "mewtwo")

	for _, order := range []pokedex.SortOrder{pokedex.SortAscending, pokedex.SortDescending} {
		once := ranking.ByName(entries, order)
		twice := ranking.ByName(once, order)
		assert.Equal(t, names(once), names(twice))
	}
}

func TestStatValues(t *testing.T) {
	cache := fixedStats{
		"bulbasaur":  {HP: 45, Attack: 49, Defense: 49},
		"charmander": {HP: 39, Attack: 52, Defense: 43},
		"squirtle":   {HP: 44, Attack: 48, Defense: 65},
	}

	values, err := ranking.StatValues(context.Background(), cache, testutils.StarterListing(), pokedex.SortByDefense)
	require.NoError(t, err)
	assert.Equal(t, []int{49, 43, 65}, values)
}

func TestStatValues_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ranking.StatValues(ctx, fixedStats{}, testutils.StarterListing(), pokedex.SortByHP)
	assert.True(t, errors.IsCanceled(err))
}

func TestByValue(t *testing.T) {
	entries := summaries("a", "b", "c", "d")
	values := []int{10, 30, 10, 20}

	assert.Equal(t, []string{"b", "d", "a", "c"}, names(ranking.ByValueDesc(entries, values)))
	assert.Equal(t, []string{"a", "c", "d", "b"}, names(ranking.ByValueAsc(entries, values)))
}
