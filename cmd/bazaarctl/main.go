// bazaarctl is the interactive console for the bazaar tracker.
//
// Usage: bazaarctl [-data=<dir>] [-interval=<duration>] [-once]
//
// Without flags it opens a menu: inspect a player's SkyBlock levels,
// refresh the reference or comparison price captures, or run the automation
// loop in the foreground. With -once it runs a single pipeline cycle and
// exits, for cron-style scheduling.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"bazaar-tracker/internal/config"
	"bazaar-tracker/internal/models"
	"bazaar-tracker/internal/services"
	"bazaar-tracker/internal/storage"
)

func main() {
	dataDir := flag.String("data", "", "Data directory (overrides DATA_DIR)")
	interval := flag.Duration("interval", 0, "Cycle interval in automatic mode (overrides CYCLE_INTERVAL)")
	once := flag.Bool("once", false, "Run a single pipeline cycle and exit")
	flag.Parse()

	cfg := config.Load()
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *interval > 0 {
		cfg.CycleInterval = *interval
	}

	store := storage.NewFileStore(cfg.DataDir)
	if err := store.Bootstrap(services.DataDirs...); err != nil {
		fmt.Printf("Failed to bootstrap data directories: %v\n", err)
		os.Exit(1)
	}

	bazaarService := services.NewBazaarService(cfg.BazaarAPIURL)
	snapshotService := services.NewSnapshotService(store)
	aggregator := services.NewAggregator(snapshotService)
	profitCalculator := services.NewProfitCalculator(snapshotService, store)
	opportunityMatcher := services.NewOpportunityMatcher(snapshotService, profitCalculator, store)
	flipService := services.NewFlipService(store)
	exportService := services.NewExportService(store)
	playerService := services.NewPlayerService(cfg.HypixelAPIKey)

	pipeline := services.NewPipeline(bazaarService, snapshotService, aggregator, profitCalculator, opportunityMatcher, flipService, cfg.CycleInterval)

	if *once {
		pipeline.RunCycle(context.Background())
		return
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== Hypixel SkyBlock Bazaar Tracker ===")

	for {
		fmt.Print("\nSelect Mode:\n" +
			"[I] Inspect Player Stats\n" +
			"[R] Update Reference Prices\n" +
			"[C] Update Comparison Prices\n" +
			"[A] Automatic Mode\n" +
			"[Q] Quit\n" +
			"> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "I":
			inspectPlayer(reader, playerService, cfg.HypixelAPIKey)

		case "R":
			refreshCapture(reader, bazaarService, exportService, "reference")

		case "C":
			refreshCapture(reader, bazaarService, exportService, "comparison")

		case "A":
			fmt.Println("Automatic mode started. Press Ctrl+C to stop.")
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			pipeline.Start(ctx)
			cancel()
			fmt.Println("\nStopping automatic mode.")

		case "Q":
			fmt.Println("Goodbye!")
			return

		default:
			fmt.Println("Invalid option.")
		}
	}
}

func inspectPlayer(reader *bufio.Reader, players *services.PlayerService, apiKey string) {
	if apiKey == "" {
		fmt.Println("API Key required for this feature.")
		return
	}

	fmt.Print("Username: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	username := strings.TrimSpace(line)
	if username == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, err := players.ResolveUUID(ctx, username)
	if errors.Is(err, services.ErrPlayerNotFound) {
		fmt.Println("Player not found.")
		return
	}
	if err != nil {
		fmt.Printf("Error fetching UUID: %v\n", err)
		return
	}

	stats, err := players.GetSkyblockStats(ctx, id)
	if err != nil {
		fmt.Printf("Error fetching player info: %v\n", err)
		return
	}
	printPlayerStats(stats)
}

func printPlayerStats(stats *models.PlayerStats) {
	fmt.Println("\nPlayer Information (UUID based):")
	fmt.Printf("%s Combat Levels\n", level(stats.Combat))
	fmt.Printf("%s Farming Levels\n", level(stats.Harvester))
	fmt.Printf("%s Mining Levels\n", level(stats.Excavator))
	fmt.Printf("%s Foraging Levels\n", level(stats.Gatherer))
	fmt.Printf("%s Taming Levels\n", level(stats.Domesticator))
	fmt.Printf("%s Dungeon Levels\n", level(stats.Dungeoneer))
	fmt.Printf("%s Enchanting Levels\n", level(stats.Curator))
	fmt.Printf("%s Fishing Levels\n", level(stats.Angler))
}

func level(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func refreshCapture(reader *bufio.Reader, bazaar *services.BazaarService, exports *services.ExportService, kind string) {
	fmt.Printf("Fetching %s data...\n", kind)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := bazaar.FetchProducts(ctx)
	if err != nil {
		fmt.Printf("Error fetching Bazaar info: %v\n", err)
		return
	}
	quotes := services.SortedQuotes(products)

	if kind == "reference" {
		err = exports.WriteReference(quotes)
	} else {
		err = exports.WriteComparison(quotes)
	}
	if err != nil {
		fmt.Printf("Error writing capture: %v\n", err)
		return
	}
	if kind == "reference" {
		fmt.Println("Data exported to bazaar_ref.json")
	} else {
		fmt.Println("Data exported to bazaar_comp.json")
	}

	fmt.Print("Export to txt files? [Y/N]: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	if strings.EqualFold(strings.TrimSpace(line), "y") {
		if kind == "reference" {
			err = exports.ExportReferenceText()
		} else {
			err = exports.ExportComparisonText()
		}
		if err != nil {
			fmt.Printf("Error exporting text: %v\n", err)
			return
		}
		fmt.Println("Done.")
	}
}
