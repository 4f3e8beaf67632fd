package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/theoremus-urban-solutions/rail-alerts-digest/config"
	"github.com/theoremus-urban-solutions/rail-alerts-digest/digest"
	"github.com/theoremus-urban-solutions/rail-alerts-digest/ingest"
	"github.com/theoremus-urban-solutions/rail-alerts-digest/internal"
	"github.com/theoremus-urban-solutions/rail-alerts-digest/shapes"
	"github.com/theoremus-urban-solutions/rail-alerts-digest/stats"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (optional)")
	dataDir := flag.String("data", "", "alert CSV directory (overrides config)")
	snapshotDir := flag.String("snapshots", "", "GTFS-RT ServiceAlerts snapshot directory (overrides config)")
	outPath := flag.String("out", "", "output JSON path (overrides config)")
	noShapes := flag.Bool("noShapes", false, "skip the route geometry fetch")
	shapesCache := flag.String("shapesCache", "", "sqlite polyline cache path (overrides config)")
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dataDir != "" {
		cfg.Input.DataDir = *dataDir
	}
	if *snapshotDir != "" {
		cfg.Input.FeedSnapshotDir = *snapshotDir
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *shapesCache != "" {
		cfg.Shapes.CachePath = *shapesCache
	}
	if *noShapes {
		cfg.Shapes.Disabled = true
	}

	if err := run(cfg); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

func run(cfg config.AppConfig) error {
	log.Printf("Reading CSV files (rail-only) from %s...", cfg.Input.DataDir)
	records, parseStats, err := ingest.ReadCSVDir(cfg.Input.DataDir, cfg.Input.ParseWorkers)
	if err != nil {
		return err
	}
	if cfg.Input.FeedSnapshotDir != "" {
		feedRecords, feedStats, err := ingest.ReadFeedSnapshotDir(cfg.Input.FeedSnapshotDir)
		if err != nil {
			return err
		}
		records = append(records, feedRecords...)
		parseStats.Merge(feedStats)
	}
	log.Printf("  Files: %d, rows: %d, skipped non-rail: %d, malformed: %d",
		parseStats.Files, parseStats.Rows, parseStats.SkippedNonRail, parseStats.Malformed)
	if len(records) == 0 {
		return ingest.ErrNoRows
	}

	winners := ingest.Deduplicate(records)
	events := ingest.NormalizeWinners(winners)
	log.Printf("  Unique rail alerts: %d", len(winners))
	if len(events) == 0 {
		return ingest.ErrNoRows
	}

	log.Printf("Building aggregations...")
	agg := stats.NewAggregator()
	for _, ev := range events {
		agg.Add(ev)
	}

	routeShapes := shapes.EmptyCollection()
	if cfg.Shapes.Disabled {
		log.Printf("Route shape fetch disabled; map layer will be empty.")
	} else {
		routeShapes = fetchShapes(cfg.Shapes, agg)
	}

	log.Printf("Building output JSON...")
	doc := digest.Assemble(agg, routeShapes, time.Now())
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output.Path, data, 0o644); err != nil {
		return err
	}
	log.Printf("Done! Wrote %s (%.2f MB)", cfg.Output.Path, float64(len(data))/1024/1024)
	log.Printf("  Routes: %d, route types: %v, map shapes: %d",
		len(doc.RouteTable), doc.RouteTypeNames, len(doc.RouteShapes.Features))
	return nil
}

// fetchShapes runs the geometry branch under its own deadline. Any
// failure here degrades to partial or empty geometry; the run itself
// still completes.
func fetchShapes(cfg config.ShapesConfig, agg *stats.Aggregator) shapes.FeatureCollection {
	var routeIDs []string
	for routeID := range agg.Routes {
		if ingest.IsKnownRoute(routeID) {
			routeIDs = append(routeIDs, routeID)
		}
	}
	if len(routeIDs) == 0 {
		return shapes.EmptyCollection()
	}

	log.Printf("Fetching route shapes for %d routes...", len(routeIDs))
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutMS)*time.Millisecond)
	defer cancel()

	var cache *shapes.Cache
	if cfg.CachePath != "" {
		c, err := shapes.OpenCache(cfg.CachePath, time.Duration(cfg.CacheTTLHrs)*time.Hour)
		if err != nil {
			log.Printf("WARNING: shape cache disabled: %v", err)
		} else {
			cache = c
			defer cache.Close()
		}
	}

	client := shapes.NewMBTAClient(cfg.APIBaseURL, cfg.MaxRetries)
	encoded := shapes.FetchRouteShapes(ctx, client, cache, routeIDs, cfg.MaxConcurrency)
	fc := shapes.BuildFeatureCollection(encoded)
	log.Printf("  Got shapes for %d routes", len(fc.Features))
	return fc
}
