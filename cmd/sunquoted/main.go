package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/awaistahir/sunquote/internal/config"
	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/awaistahir/sunquote/internal/leads"
	"github.com/awaistahir/sunquote/internal/log"
	"github.com/awaistahir/sunquote/internal/rates"
	"github.com/awaistahir/sunquote/internal/store"
	"github.com/awaistahir/sunquote/internal/uiapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:          "sunquoted",
		Short:        "SunQuote HTTP API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetViper(), cfgFile)
			if err != nil {
				return err
			}

			logger := log.InitLog("sunquoted", log.ParseLevel(cfg.LogLevel))
			defer logger.Sync()
			undo := zap.ReplaceGlobals(logger)
			defer undo()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			table, err := loadRates(ctx, cfg.DB)
			if err != nil {
				return err
			}

			srv := uiapi.NewServer(table, leads.NewLogSubmitter(logger),
				uiapi.WithLogger(logger),
				uiapi.WithCORSOrigins(cfg.CORSOrigins),
				uiapi.WithRequestTimeout(cfg.RequestTimeout),
			)

			logger.Info("starting sunquoted",
				zap.String("addr", cfg.Addr),
				zap.String("db", cfg.DB),
				zap.Int("regions", table.Len()),
			)
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sunquote/config.yaml)")
	rootCmd.Flags().String("db", "", "Database path")
	rootCmd.Flags().String("addr", "", "Listen address (default :8080)")
	viper.BindPFlag("db", rootCmd.Flags().Lookup("db"))
	viper.BindPFlag("addr", rootCmd.Flags().Lookup("addr"))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRates seeds the built-in regions into a fresh database and reads the table the server
// will use. Regions deleted by an operator are not restored; `sunquote init` does that.
// The store is closed again; requests never touch the database.
func loadRates(ctx context.Context, dbPath string) (engine.RateTable, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return engine.RateTable{}, err
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		return engine.RateTable{}, fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	n, err := st.EnsureSeeded(ctx, rates.Default())
	if err != nil {
		return engine.RateTable{}, fmt.Errorf("seeding rates: %w", err)
	}
	if n > 0 {
		zap.S().Infof("seeded %d regions", n)
	}

	return st.LoadRateTable(ctx)
}
