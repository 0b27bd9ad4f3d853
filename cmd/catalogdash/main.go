package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/catalogdash/catalogdash/internal/catalog"
	"github.com/catalogdash/catalogdash/internal/config"
	"github.com/catalogdash/catalogdash/internal/dashboard"
	"github.com/catalogdash/catalogdash/internal/database"
	"github.com/catalogdash/catalogdash/internal/ingest"
	"github.com/catalogdash/catalogdash/internal/logging"
	"github.com/catalogdash/catalogdash/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "catalogdash",
	Short:   "Streaming catalog dashboard",
	Long:    "catalogdash loads a streaming catalog export and serves an interactive dashboard over it.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		if err := config.LoadEnvFile(".env"); err != nil {
			return err
		}
		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger = logging.New(logging.Config{Level: level, Format: cfg.Logging.Format})
		log.Logger = logger
		if path != "" {
			logger.Debug().Str("path", path).Msg("config loaded")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("catalogdash", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/catalogdash/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point source.path at your catalog export.")
		return nil
	},
}

// loadCatalog runs the ingest steps against the configured source.
func loadCatalog(ctx context.Context) (*catalog.Table, *ingest.Report, error) {
	units, err := catalog.NewUnitTable(cfg.DurationUnits)
	if err != nil {
		return nil, nil, fmt.Errorf("duration_units: %w", err)
	}
	return ingest.Load(ctx, ingest.Source{Path: cfg.Source.Path, Units: units}, logger)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Load the catalog and report what the cleaning steps did",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, report, err := loadCatalog(cmd.Context())
		if report != nil {
			fmt.Printf("Source: %s (%s)\n", report.SourcePath, report.SourceKind)
			if report.Missing {
				fmt.Println("  not found, dashboard would start empty")
			}
			for _, s := range report.Steps {
				if s.Err != nil {
					fmt.Printf("  %-10s error: %v\n", s.Name, s.Err)
					continue
				}
				fmt.Printf("  %-10s %s\n", s.Name, s.Summary)
			}
		}
		if err != nil {
			return err
		}

		fmt.Println("\nCatalog:")
		fmt.Printf("  Rows: %d\n", table.Len())
		fmt.Printf("  Data date: %s\n", report.DataDate)
		if len(report.Filled) > 0 {
			var parts []string
			for _, f := range []string{"country", "rating", "director", "cast"} {
				parts = append(parts, fmt.Sprintf("%s=%d", f, report.Filled[f]))
			}
			fmt.Printf("  Filled: %s\n", strings.Join(parts, " "))
		}

		if report.SourceKind == ingest.KindSQLite {
			db, err := database.Open(report.SourcePath)
			if err != nil {
				return err
			}
			defer db.Close()
			stats, err := db.GetStats()
			if err != nil {
				return fmt.Errorf("getting stats: %w", err)
			}
			fmt.Println("\nSnapshot:")
			fmt.Printf("  Stored rows: %d (%d movies, %d TV shows)\n", stats.Titles, stats.Movies, stats.TVShows)
			fmt.Printf("  Imports: %d\n", stats.Imports)

			imp, err := db.GetLastImport()
			if err != nil {
				return fmt.Errorf("reading import history: %w", err)
			}
			if imp != nil {
				at := "unknown time"
				if imp.ImportedAt != nil {
					at = *imp.ImportedAt
				}
				fmt.Printf("  Last import: %s at %s\n", imp.SourcePath, at)
			}
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <csv> <db>",
	Short: "Copy a CSV export into a SQLite snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := ingest.Import(args[0], args[1])
		if err != nil {
			return err
		}
		logger.Info().Str("csv", args[0]).Str("db", args[1]).Int("rows", n).Msg("snapshot written")
		fmt.Printf("Imported %d rows into %s\n", n, args[1])
		return nil
	},
}

var chartControls []string

var chartCmd = &cobra.Command{
	Use:   "chart <slot>",
	Short: "Render one chart as JSON",
	Long:  "Render one dashboard slot with the given control values and print the figure as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		c := dashboard.DefaultControls(cfg.Dashboard.Country1, cfg.Dashboard.Country2)
		for _, kv := range chartControls {
			id, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("--control %q: expected id=value", kv)
			}
			if err := c.Set(id, value); err != nil {
				return err
			}
		}

		fig, err := dashboard.New(table).Render(dashboard.Slot(args[0]), c)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(fig, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	chartCmd.Flags().StringArrayVar(&chartControls, "control", nil, "Control value as id=value (repeatable)")
}

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		table, report, err := loadCatalog(ctx)
		if err != nil {
			return err
		}

		if servePort > 0 {
			cfg.Server.Port = servePort
		}
		srv, err := server.New(dashboard.New(table), server.Options{
			Defaults:       dashboard.DefaultControls(cfg.Dashboard.Country1, cfg.Dashboard.Country2),
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Report:         report,
			Logger:         logger,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Starting server at http://%s\n", cfg.Addr())
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(ctx, srv, cfg.Addr())
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}
