package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/awaistahir/sunquote/internal/config"
	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/awaistahir/sunquote/internal/log"
	"github.com/awaistahir/sunquote/internal/rates"
	"github.com/awaistahir/sunquote/internal/report"
	"github.com/awaistahir/sunquote/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sunquote",
		Short: "SunQuote - Estimate the cost and payback of a residential solar installation",
		Long: `SunQuote prices a rooftop solar system from a few household details and
nets out the federal tax credit, state incentives and SREC income for your region.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(viper.GetViper(), cfgFile)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(log.InitLog("sunquote", log.ParseLevel(cfg.LogLevel)))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sunquote/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "database path (default is $HOME/.sunquote/sunquote.db)")
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(ratesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DB), 0755); err != nil {
		return nil, err
	}
	st, err := store.NewStore(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return st, nil
}

// loadRates reads the stored table, falling back to the built-in one before `sunquote init`
func loadRates(ctx context.Context) (engine.RateTable, error) {
	st, err := openStore()
	if err != nil {
		return engine.RateTable{}, err
	}
	defer st.Close()

	table, seeded, err := st.LoadRateTableOr(ctx, rates.Default())
	if err != nil {
		return engine.RateTable{}, err
	}
	if !seeded {
		zap.S().Warnf("%s is not initialised, using built-in rates (run 'sunquote init')", cfg.DB)
	}
	return table, nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and seed the built-in regional rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.SeedRates(cmd.Context(), rates.Default())
			if err != nil {
				return fmt.Errorf("seeding rates: %w", err)
			}

			fmt.Printf("✓ Seeded %d regions\n", n)
			fmt.Printf("Database: %s\n", cfg.DB)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Review rates: sunquote rates list")
			fmt.Println("  2. Get a quote: sunquote estimate --size 8 --bill 150")

			return nil
		},
	}
}

func estimateCmd() *cobra.Command {
	in := engine.DefaultInput()
	var roof, shading, region string
	var format, out string
	var years int
	var escalation float64

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost and payback of a solar system",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.RoofType = engine.RoofType(roof)
			in.ShadingLevel = engine.ShadingLevel(shading)
			in.Region = engine.Region(region)

			table, err := loadRates(cmd.Context())
			if err != nil {
				return err
			}

			b, err := engine.Quote(in, table)
			if err != nil {
				return err
			}
			for _, w := range engine.Warnings(in, table) {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
			}

			schedule := engine.PaybackSchedule(b, engine.WithHorizon(years), engine.WithEscalation(escalation))

			switch format {
			case "text":
				if err := report.WriteText(os.Stdout, in, b); err != nil {
					return err
				}
				if year := engine.BreakEvenYear(schedule); year > 0 {
					fmt.Printf("Break-even in year %d\n", year)
				}
				return nil
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Breakdown     engine.CostBreakdown `json:"breakdown"`
					Shares        []engine.CostShare   `json:"shares"`
					Schedule      []engine.PaybackYear `json:"schedule"`
					BreakEvenYear int                  `json:"breakEvenYear"`
				}{b, engine.Shares(b), schedule, engine.BreakEvenYear(schedule)})
			case "xlsx":
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := report.WriteXLSX(f, in, b, schedule); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Printf("✓ Wrote %s\n", out)
				return nil
			default:
				return fmt.Errorf("unknown format %q (use text, json or xlsx)", format)
			}
		},
	}

	cmd.Flags().Float64VarP(&in.SystemSizeKw, "size", "s", engine.DefaultSystemSizeKw, "System size in kW")
	cmd.Flags().Float64VarP(&in.MonthlyBillUsd, "bill", "b", engine.DefaultMonthlyBillUsd, "Average monthly electric bill in USD")
	cmd.Flags().StringVar(&roof, "roof", string(engine.DefaultRoofType), "Roof type (asphalt, tile, metal, flat)")
	cmd.Flags().StringVar(&shading, "shading", string(engine.DefaultShadingLevel), "Shading level (minimal, moderate, heavy)")
	cmd.Flags().StringVarP(&region, "region", "r", string(engine.DefaultRegion), "Region")
	cmd.Flags().BoolVar(&in.BatteryBackup, "battery", false, "Add battery backup")
	cmd.Flags().BoolVar(&in.EvCharger, "ev", false, "Add an EV charger")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, xlsx)")
	cmd.Flags().StringVarP(&out, "out", "o", "solar-estimate.xlsx", "Output file for xlsx format")
	cmd.Flags().IntVar(&years, "years", engine.DefaultScheduleYears, "Payback schedule horizon in years")
	cmd.Flags().Float64Var(&escalation, "escalation", 0, "Annual utility rate escalation (0.03 = 3%)")

	return cmd
}

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage regional incentive rates",
	}

	cmd.AddCommand(ratesListCmd())
	cmd.AddCommand(ratesSetCmd())
	cmd.AddCommand(ratesDeleteCmd())

	return cmd
}

func ratesListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored regional rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			table, err := st.LoadRateTable(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(table.Snapshot())
			}

			if table.Len() == 0 {
				fmt.Println("No rates stored (run 'sunquote init')")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "REGION\tINCENTIVE\tSREC $/MWH\tINSTALL $/KW")
			snapshot := table.Snapshot()
			for _, region := range table.Regions() {
				r := snapshot[region]
				fmt.Fprintf(tw, "%s\t%.1f%%\t%.2f\t%.2f\n", region, r.StateIncentiveRate*100, r.SrecPricePerMwh, r.InstallCostPerKw)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func ratesSetCmd() *cobra.Command {
	var r engine.RegionRates

	cmd := &cobra.Command{
		Use:   "set <region>",
		Short: "Create or update the rates of a region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			region := engine.Region(args[0])
			if err := st.SaveRegionRates(cmd.Context(), region, r); err != nil {
				return err
			}

			fmt.Printf("✓ Saved rates for %s\n", region)
			return nil
		},
	}

	cmd.Flags().Float64Var(&r.StateIncentiveRate, "incentive", 0, "State incentive as a fraction of gross cost (required)")
	cmd.Flags().Float64Var(&r.SrecPricePerMwh, "srec", 0, "SREC price in USD per MWh (required)")
	cmd.Flags().Float64Var(&r.InstallCostPerKw, "install", 0, "Published install cost in USD per kW")

	cmd.MarkFlagRequired("incentive")
	cmd.MarkFlagRequired("srec")

	return cmd
}

func ratesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <region>",
		Short: "Remove a region; estimates for it use the fallback rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteRegionRates(cmd.Context(), engine.Region(args[0])); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted rates for %s\n", args[0])
			return nil
		},
	}
}
