// Package main is the entry point for the pokedex web server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-web/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Pokedex catalog viewer",
	Long:  `Pokedex serves a browsable, searchable catalog backed by the public PokeAPI.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
