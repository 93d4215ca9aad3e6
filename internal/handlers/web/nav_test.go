package web_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/pokedex-web/internal/handlers/web"
)

func TestBuildNav(t *testing.T) {
	testCases := []struct {
		path   string
		active string
	}{
		{path: "", active: "/"},
		{path: "/", active: "/"},
		{path: "/gallery", active: "/gallery"},
		{path: "/gallery/extra", active: "/gallery"},
		{path: "/pokemon/1", active: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			items := web.BuildNav(tc.path)
			assert.Len(t, items, len(web.MainNav))

			var active string
			for _, it := range items {
				if it.Active {
					active = it.Href
				}
			}
			assert.Equal(t, tc.active, active)
		})
	}
}
