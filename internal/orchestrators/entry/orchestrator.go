package entry

import (
	"context"
	"strings"

	"github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
)

// Config holds the dependencies for the entry orchestrator
type Config struct {
	Client pokeapi.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

// Orchestrator implements the entry Service
type Orchestrator struct {
	client pokeapi.Client
}

// New creates a new entry orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{client: cfg.Client}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// GetEntry fetches the entry and computes prev/next ids
func (o *Orchestrator) GetEntry(ctx context.Context, input *GetEntryInput) (*GetEntryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.NameOrID) == "" {
		return nil, errors.InvalidArgument("name or id is required")
	}

	detail, err := o.client.GetEntry(ctx, input.NameOrID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get entry %s", input.NameOrID)
	}

	return &GetEntryOutput{
		Entry:  detail,
		PrevID: PrevID(detail.ID),
		NextID: NextID(detail.ID),
	}, nil
}
