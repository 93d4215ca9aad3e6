package client

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/entry"
)

var showCmd = &cobra.Command{
	Use:   "show [name-or-id]",
	Short: "Show one entry",
	Long:  `Show an entry's types, abilities and base stats, with its neighbours by id.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(_ *cobra.Command, args []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	entries, err := entry.New(&entry.Config{Client: client})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("Requesting '%s' from %s...", args[0], apiBaseURL)

	out, err := entries.GetEntry(ctx, &entry.GetEntryInput{NameOrID: args[0]})
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}

	if jsonOutput {
		return printJSON(out)
	}

	e := out.Entry
	fmt.Printf("#%d %s\n", e.ID, pokedex.DisplayName(e.Name))
	fmt.Printf("  Sprite: %s\n", e.SpriteURL)
	fmt.Printf("  Types: %s\n", strings.Join(e.Categories, ", "))
	fmt.Printf("  Abilities: %s\n", strings.Join(e.Abilities, ", "))

	fmt.Printf("\nStats:\n")
	for _, st := range e.Stats {
		fmt.Printf("  %s: %d\n", st.Name, st.BaseValue)
	}

	fmt.Println()
	if out.PrevID > 0 {
		fmt.Printf("Prev: #%d\n", out.PrevID)
	}
	fmt.Printf("Next: #%d\n", out.NextID)
	return nil
}
