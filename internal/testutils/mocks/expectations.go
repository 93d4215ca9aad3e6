// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"strconv"

	"go.uber.org/mock/gomock"

	pokeapimock "github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi/mock"
	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
)

// ExpectDetails lets the mock answer GetEntry for every given detail, by name
// and by numeric id, any number of times. Unknown names answer NotFound.
func ExpectDetails(mockClient *pokeapimock.MockClient, details ...*pokedex.EntryDetail) {
	byKey := make(map[string]*pokedex.EntryDetail, len(details)*2)
	for _, d := range details {
		byKey[d.Name] = d
		byKey[strconv.Itoa(d.ID)] = d
	}

	mockClient.EXPECT().
		GetEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) (*pokedex.EntryDetail, error) {
			if d, ok := byKey[key]; ok {
				return d, nil
			}
			return nil, errors.NotFoundf("pokemon/%s not found", key)
		}).
		AnyTimes()
}

// ExpectListing sets up the base collection listing
func ExpectListing(mockClient *pokeapimock.MockClient, limit int, entries []pokedex.EntrySummary) {
	mockClient.EXPECT().
		ListEntries(gomock.Any(), limit).
		Return(entries, nil).
		AnyTimes()
}

// ExpectCategories sets up the type listing
func ExpectCategories(mockClient *pokeapimock.MockClient, categories []pokedex.Category) {
	mockClient.EXPECT().
		ListCategories(gomock.Any()).
		Return(categories, nil).
		AnyTimes()
}

// ExpectMembers sets up one category's membership listing
func ExpectMembers(mockClient *pokeapimock.MockClient, category string, members []pokedex.EntrySummary) {
	mockClient.EXPECT().
		ListCategoryMembers(gomock.Any(), category).
		Return(members, nil).
		AnyTimes()
}
