package client

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/search"
	"github.com/KirkDiggler/pokedex-web/internal/repositories/stats"
	"github.com/KirkDiggler/pokedex-web/internal/services/statcache"
)

var (
	searchCategory string
	searchSort     string
	searchOrder    string
)

var searchCmd = &cobra.Command{
	Use:   "search [prefix]",
	Short: "Run the home page search",
	Long:  `Filter the base listing by name prefix and category, then sort by name or a base stat.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCategory, "type", "", "Only entries of this category")
	searchCmd.Flags().StringVar(&searchSort, "sort", "name", "Sort key: name, hp, attack, defense")
	searchCmd.Flags().StringVar(&searchOrder, "order", "asc", "Sort order: asc, desc")
}

func runSearch(_ *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	client, err := createClient()
	if err != nil {
		return err
	}

	svc, err := search.New(&search.Config{Client: client})
	if err != nil {
		return err
	}
	cache, err := statcache.New(&statcache.Config{Client: client, Repository: stats.NewInMemory()})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("Requesting base listing from %s...", apiBaseURL)

	base, err := svc.ListBase(ctx)
	if err != nil {
		return fmt.Errorf("failed to list base entries: %w", err)
	}

	out, err := svc.Search(ctx, &search.SearchInput{
		Base:      base,
		Query:     query,
		Category:  searchCategory,
		SortBy:    pokedex.ParseSortKey(searchSort),
		SortOrder: pokedex.ParseSortOrder(searchOrder),
		StatCache: cache,
	})
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}

	if jsonOutput {
		return printJSON(out)
	}

	switch {
	case out.Skipped:
		fmt.Println("Enter a prefix or --type to search.")
	case out.NoResults:
		fmt.Println("No Pokémon found.")
	default:
		for _, sg := range out.Suggestions {
			fmt.Printf("  #%s %s\n", sg.ID, sg.Name)
		}
	}
	return nil
}
