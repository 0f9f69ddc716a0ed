package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sipcalc/sip-calculator/internal/config"
	"github.com/sipcalc/sip-calculator/internal/domain"
	"github.com/sipcalc/sip-calculator/internal/history"
)

var (
	settingsPath     string
	debug            bool
	currencyOverride string

	settings *config.Settings
	logger   *zap.SugaredLogger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sipcalc",
		Short: "Systematic Investment Plan projection calculator",
		Long: `sipcalc projects the growth of a monthly SIP with annual step-ups, an
optional initial lumpsum, expense ratio, tax on gains and inflation.
It compares scenarios, exports year-by-year breakdowns, keeps a short
history of recent projections and can serve the calculator over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "sipcalc.yaml", "application settings file (optional)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&currencyOverride, "currency", "", "display currency (USD, INR, EUR, GBP, JPY, AUD, CAD, SGD)")

	rootCmd.AddCommand(
		newProjectCmd(),
		newCompareCmd(),
		newExportCmd(),
		newHistoryCmd(),
		newServeCmd(),
		newScheduleCmd(),
		newPresetsCmd(),
		newExampleConfigCmd(),
	)
	return rootCmd
}

func setup() error {
	s, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	if currencyOverride != "" {
		s.Currency = currencyOverride
	}
	if c, ok := domain.ParseCurrency(s.Currency); ok {
		s.Currency = string(c)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	settings = s

	var base *zap.Logger
	if debug {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	logger = base.Sugar()
	return nil
}

// openRecorder opens the configured history backend.
func openRecorder(ctx context.Context) (*history.Recorder, error) {
	store, err := history.OpenStore(ctx, history.Options{
		Backend:   settings.History.Backend,
		Path:      settings.History.Path,
		RedisAddr: settings.History.RedisAddr,
		RedisKey:  settings.History.RedisKey,
	})
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	rec, err := history.NewRecorder(ctx, store, settings.History.Capacity)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	rec.SetLogger(logger)
	logger.Debugf("history backend %s opened", settings.History.Backend)
	return rec, nil
}
