// Package ranking holds the filter and sort steps shared by the catalog views
package ranking

import (
	"context"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/services/statcache"
)

// MaxParallelLookups bounds concurrent stat resolutions per sort
const MaxParallelLookups = 16

// MatchPrefix keeps entries whose lowercased name starts with the
// lowercased query. An empty query keeps everything.
func MatchPrefix(entries []pokedex.EntrySummary, query string) []pokedex.EntrySummary {
	prefix := strings.ToLower(query)
	out := make([]pokedex.EntrySummary, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Intersect keeps candidates whose name appears in members, in candidate order
func Intersect(candidates, members []pokedex.EntrySummary) []pokedex.EntrySummary {
	names := make(map[string]struct{}, len(members))
	for _, m := range members {
		names[m.Name] = struct{}{}
	}

	out := make([]pokedex.EntrySummary, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := names[c.Name]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ByName returns a copy sorted with English collation in the given order
func ByName(entries []pokedex.EntrySummary, order pokedex.SortOrder) []pokedex.EntrySummary {
	out := slices.Clone(entries)
	// A Collator keeps scratch buffers, so each sort gets its own.
	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		if order == pokedex.SortDescending {
			return c.CompareString(out[j].Name, out[i].Name) < 0
		}
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// StatValues resolves key for every entry through the cache, in parallel.
// values[i] belongs to entries[i].
func StatValues(ctx context.Context, cache statcache.Service, entries []pokedex.EntrySummary, key pokedex.SortKey) ([]int, error) {
	values := make([]int, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxParallelLookups)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			st, err := cache.GetStats(gctx, e.Name)
			if err != nil {
				return err
			}
			values[i] = st.Value(key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

// ByValueDesc returns a copy ordered by descending value; ties keep input order
func ByValueDesc(entries []pokedex.EntrySummary, values []int) []pokedex.EntrySummary {
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})

	out := make([]pokedex.EntrySummary, len(entries))
	for i, k := range idx {
		out[i] = entries[k]
	}
	return out
}

// ByValueAsc returns a copy ordered by ascending value; ties keep input order
func ByValueAsc(entries []pokedex.EntrySummary, values []int) []pokedex.EntrySummary {
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	out := make([]pokedex.EntrySummary, len(entries))
	for i, k := range idx {
		out[i] = entries[k]
	}
	return out
}
