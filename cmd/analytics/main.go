package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/jaego-dev/jaegoboard/internal/cache"
	"github.com/jaego-dev/jaegoboard/internal/config"
	"github.com/jaego-dev/jaegoboard/internal/ingest"
	"github.com/jaego-dev/jaegoboard/internal/repository/postgres"
	"github.com/jaego-dev/jaegoboard/internal/service"
	"github.com/jaego-dev/jaegoboard/internal/storage"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newService(c *cli.Context) (*service.AnalyticsService, error) {
	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return nil, err
	}

	cfg := config.Load()
	analyticsCache, err := cache.NewAnalyticsCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	return service.NewAnalyticsService(
		postgres.NewFactRepository(db),
		postgres.NewRegistryRepository(db),
		analyticsCache,
		cfg,
	), nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "analytics",
		Usage: "Ingest spreadsheets and run inventory analytics",
		Commands: []*cli.Command{
			{
				Name:  "ingest-sales",
				Usage: "Ingest a sales extract spreadsheet (xlsx or csv)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the sales extract",
						Required: true,
					},
				},
				Action: runIngestSales,
			},
			{
				Name:  "ingest-registry",
				Usage: "Ingest a product registry spreadsheet (xlsx or csv)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the registry sheet",
						Required: true,
					},
				},
				Action: runIngestRegistry,
			},
			{
				Name:   "run",
				Usage:  "Compute analytics and print the status summary",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runCompute,
			},
			{
				Name:   "export",
				Usage:  "Compute analytics and upload screener reports as CSV",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runExport,
			},
			{
				Name:   "invalidate",
				Usage:  "Drop all cached analytics results",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runInvalidate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runIngestSales(c *cli.Context) error {
	facts, snapshots, err := ingest.LoadSalesFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to parse sales extract: %w", err)
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	if err := svc.IngestSalesFacts(c.Context, facts); err != nil {
		return fmt.Errorf("failed to ingest sales facts: %w", err)
	}
	if len(snapshots) > 0 {
		if err := svc.IngestStockSnapshots(c.Context, snapshots); err != nil {
			return fmt.Errorf("failed to ingest stock snapshots: %w", err)
		}
	}

	log.Printf("ingested %d sales facts and %d stock snapshots", len(facts), len(snapshots))
	return nil
}

func runIngestRegistry(c *cli.Context) error {
	entries, err := ingest.LoadRegistryFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to parse registry sheet: %w", err)
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	if err := svc.UpsertRegistry(c.Context, entries); err != nil {
		return fmt.Errorf("failed to upsert registry: %w", err)
	}

	log.Printf("upserted %d registry entries", len(entries))
	return nil
}

func runCompute(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.Recompute(c.Context)
	if err != nil {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	log.Printf("anchor date: %s", result.Anchor)
	log.Printf("skus: %d, groups: %d, risks: %d, dead stock: %d",
		len(result.Skus), len(result.Groups), len(result.Risks), len(result.DeadStock))
	for _, s := range result.Summary {
		log.Printf("  %s: %d", s.Status, s.Count)
	}
	return nil
}

func runExport(c *cli.Context) error {
	cfg := config.Load()
	if !cfg.Export.Enabled {
		return fmt.Errorf("report export is disabled (set EXPORT_ENABLED=true)")
	}

	store, err := storage.NewMinioClient(cfg.Export)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.Result(c.Context)
	if err != nil {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	keys, err := storage.NewReportExporter(store).Export(c.Context, result)
	if err != nil {
		return fmt.Errorf("failed to export reports: %w", err)
	}

	for _, key := range keys {
		log.Printf("uploaded %s", key)
	}
	return nil
}

func runInvalidate(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}
	if err := svc.Invalidate(c.Context); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	log.Println("analytics cache invalidated")
	return nil
}
