// Package pokeapi is the data access wrapper for the remote PokeAPI gateway
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi Client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
)

// DefaultBaseURL is the public PokeAPI v2 root
const DefaultBaseURL = "https://pokeapi.co/api/v2/"

// Client defines the read-only surface of the gateway
type Client interface {
	// Get issues GET {base}/{path}?{query} and decodes the JSON body into dest.
	// Returns errors.NotFound on 404 and errors.Network for any other failure.
	Get(ctx context.Context, path string, query url.Values, dest any) error

	// ListEntries returns the first limit entries of the collection
	ListEntries(ctx context.Context, limit int) ([]pokedex.EntrySummary, error)

	// GetEntry fetches one entry by name or numeric id
	GetEntry(ctx context.Context, nameOrID string) (*pokedex.EntryDetail, error)

	// ListCategories returns every type
	ListCategories(ctx context.Context) ([]pokedex.Category, error)

	// ListCategoryMembers returns the entries belonging to a type
	ListCategoryMembers(ctx context.Context, category string) ([]pokedex.EntrySummary, error)

	// Ping checks that the gateway answers at all
	Ping(ctx context.Context) error
}

// Config contains configuration options for the gateway client.
type Config struct {
	// BaseURL of the gateway (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout per request (optional, zero keeps the transport default)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client used for requests (optional)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	vb := errors.NewValidationBuilder()
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		vb.InvalidField("BaseURL", err.Error())
	} else if u.Scheme == "" || u.Host == "" {
		vb.InvalidField("BaseURL", "must be absolute")
	}
	if cfg.HTTPTimeout < 0 {
		vb.InvalidField("HTTPTimeout", "cannot be negative")
	}
	return vb.Build()
}

type client struct {
	base *url.URL
	http *http.Client
}

// New creates a new gateway client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse base url %s", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		base: base,
		http: httpClient,
	}, nil
}

func (c *client) Get(ctx context.Context, path string, query url.Values, dest any) error {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return errors.InvalidArgumentf("invalid path %q: %v", path, err)
	}
	target := c.base.ResolveReference(ref)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", path)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.WrapWithCodef(ctxErr, errors.GetCode(ctxErr), "GET %s abandoned", path)
		}
		return errors.WrapWithCodef(err, errors.CodeNetwork, "GET %s failed", path)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	slog.DebugContext(ctx, "gateway request",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return errors.NotFoundf("%s not found", path).WithMeta("path", path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Networkf("GET %s returned status %d", path, resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.WrapWithCodef(err, errors.CodeNetwork, "failed to decode %s", path)
	}
	return nil
}

func (c *client) ListEntries(ctx context.Context, limit int) ([]pokedex.EntrySummary, error) {
	if limit <= 0 {
		return nil, errors.InvalidArgumentf("limit must be positive, got %d", limit)
	}

	var resp listResponse
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if err := c.Get(ctx, "pokemon", query, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to list entries")
	}
	return convertSummaries(resp.Results), nil
}

func (c *client) GetEntry(ctx context.Context, nameOrID string) (*pokedex.EntryDetail, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if key == "" {
		return nil, errors.InvalidArgument("entry name is required")
	}

	var resp entryResponse
	if err := c.Get(ctx, "pokemon/"+url.PathEscape(key), nil, &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to get entry %s", key)
	}
	return convertEntryToDetail(&resp), nil
}

func (c *client) ListCategories(ctx context.Context) ([]pokedex.Category, error) {
	var resp listResponse
	if err := c.Get(ctx, "type", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	return convertCategories(resp.Results), nil
}

func (c *client) ListCategoryMembers(ctx context.Context, category string) ([]pokedex.EntrySummary, error) {
	if category == "" {
		return nil, errors.InvalidArgument("category is required")
	}

	var resp categoryResponse
	if err := c.Get(ctx, "type/"+url.PathEscape(category), nil, &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to list members of %s", category)
	}
	return convertMembers(&resp), nil
}

func (c *client) Ping(ctx context.Context) error {
	query := url.Values{"limit": []string{"1"}}
	if err := c.Get(ctx, "type", query, nil); err != nil {
		return fmt.Errorf("gateway ping: %w", err)
	}
	return nil
}
