package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/antigravity/sakha-transit/internal/assembler"
	"github.com/antigravity/sakha-transit/internal/catalog"
	"github.com/antigravity/sakha-transit/internal/config"
	"github.com/antigravity/sakha-transit/internal/hubs"
	"github.com/antigravity/sakha-transit/internal/idgen"
	"github.com/antigravity/sakha-transit/internal/railgraph"
	"github.com/antigravity/sakha-transit/internal/routemodel"
	"github.com/antigravity/sakha-transit/internal/search"
	"github.com/antigravity/sakha-transit/internal/segment"
	"github.com/antigravity/sakha-transit/internal/validate"
)

var (
	fromCityID   string
	toCityID     string
	dateStr      string
	priorityStr  string
	maxTransfers int
	catalogPath  string
	configPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Sakha intermodal route planner",
		Long: `planner searches an offline catalog fixture for a route between two
cities, applying the same strategy waterfall the HTTP service uses.

Example:
  planner --from yakutsk --to verkhoyansk --date 2026-02-10`,
		RunE: runPlan,
	}

	rootCmd.Flags().StringVar(&fromCityID, "from", "", "origin city identifier (required)")
	rootCmd.Flags().StringVar(&toCityID, "to", "", "destination city identifier (required)")
	rootCmd.Flags().StringVar(&dateStr, "date", "", "travel date, YYYY-MM-DD (default: today)")
	rootCmd.Flags().StringVar(&priorityStr, "priority", "fastest", "fastest | cheapest | fewest_transfers")
	rootCmd.Flags().IntVar(&maxTransfers, "max-transfers", 0, "maximum transfers (0 = use config default)")
	rootCmd.Flags().StringVar(&catalogPath, "catalog", "catalog.json", "path to a JSON catalog fixture")
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional YAML config overlay")
	rootCmd.MarkFlagRequired("from")
	rootCmd.MarkFlagRequired("to")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// catalogFixture is the on-disk shape a JSON catalog fixture carries,
// mirroring catalog.BuildInput field-for-field.
type catalogFixture struct {
	Cities      []catalog.City       `json:"cities"`
	Stops       []catalog.Stop       `json:"stops"`
	Hubs        []catalog.Hub        `json:"hubs"`
	Connections []catalog.Connection `json:"connections"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := config.LoadYAMLOverlay(cfg, configPath); err != nil {
		return err
	}

	date := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", dateStr, err)
		}
		date = parsed
	}

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("reading catalog fixture: %w", err)
	}
	var fixture catalogFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parsing catalog fixture: %w", err)
	}

	cat, err := catalog.Build(catalog.BuildInput{
		Cities:      fixture.Cities,
		Stops:       fixture.Stops,
		Hubs:        fixture.Hubs,
		Connections: fixture.Connections,
	})
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	if len(cat.Rejected) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d connections rejected at load time\n", len(cat.Rejected))
	}

	transfers := maxTransfers
	if transfers <= 0 {
		transfers = cfg.DefaultMaxTransfers
	}

	segBuilder := segment.New(cat, nil, idgen.New)
	asm := assembler.New(idgen.New)
	hubSelector := hubs.New(cat)
	rail := railgraph.Build(cat)
	validator := validate.New(hubSelector)
	searcher := search.New(cat, segBuilder, asm, hubSelector, rail, validator)

	route, alternatives, err := searcher.Search(context.Background(), fromCityID, toCityID, date, search.Options{
		MaxTransfers: transfers,
		Priority:     search.Priority(priorityStr),
	})
	if err != nil {
		return err
	}

	printRoute(route)
	for i, alt := range alternatives {
		fmt.Printf("\nAlternative %d:\n", i+1)
		printRoute(alt)
	}
	return nil
}

func printRoute(route routemodel.Route) {
	fmt.Printf("%s -> %s: %s, %dmin, %s (%d segment(s))\n",
		route.FromCityID, route.ToCityID,
		route.TotalDistance.Display, route.TotalDuration.TotalMin, route.TotalPrice.Display,
		len(route.Segments))
	for _, seg := range route.Segments {
		fmt.Printf("  %-12s %s -> %s  %s  %s\n", seg.Mode, seg.FromCityID, seg.ToCityID, seg.Distance.Display, seg.Price.Display)
	}
	if len(route.Validation.Warnings) > 0 {
		fmt.Printf("  %d validation warning(s)\n", len(route.Validation.Warnings))
	}
}
