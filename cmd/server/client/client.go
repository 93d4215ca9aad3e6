// Package client provides commands that query the gateway the way the web
// pages do, for checking data from a terminal.
package client

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi"
)

var (
	// Connection flags
	apiBaseURL string
	timeout    time.Duration
	jsonOutput bool
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Query the gateway from the command line",
	Long:  `Client commands issue the same gateway requests as the web pages and print the results.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&apiBaseURL, "api-base-url", pokeapi.DefaultBaseURL, "PokeAPI base URL")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	ClientCmd.AddCommand(showCmd)
	ClientCmd.AddCommand(typesCmd)
	ClientCmd.AddCommand(searchCmd)
}

// createClient creates a gateway client from the connection flags
func createClient() (pokeapi.Client, error) {
	client, err := pokeapi.New(&pokeapi.Config{BaseURL: apiBaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}
	return client, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal response to JSON: %w", err)
	}
	return nil
}
