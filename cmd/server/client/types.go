package client

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/gallery"
)

var (
	typeMembers string
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List categories, or the entries of one",
	Long:  `List every category, or with --members the entries the gallery shows for one category.`,
	RunE:  runTypes,
}

func init() {
	typesCmd.Flags().StringVar(&typeMembers, "members", "", "List the entries of this category (\"all\" for the base listing)")
}

func runTypes(_ *cobra.Command, _ []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	svc, err := gallery.New(&gallery.Config{Client: client})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if typeMembers == "" {
		log.Printf("Requesting categories from %s...", apiBaseURL)

		names, err := svc.ListCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if jsonOutput {
			return printJSON(names)
		}

		fmt.Printf("Found %d categories:\n", len(names))
		for _, n := range names {
			fmt.Printf("  - %s\n", n)
		}
		return nil
	}

	log.Printf("Requesting '%s' entries from %s...", typeMembers, apiBaseURL)

	out, err := svc.ListEntries(ctx, &gallery.ListEntriesInput{Category: typeMembers})
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if jsonOutput {
		return printJSON(out)
	}

	fmt.Printf("Showing %d of %d entries:\n", len(out.Entries), out.Total)
	for _, e := range out.Entries {
		fmt.Printf("  - %s\n", e.Name)
	}
	return nil
}
