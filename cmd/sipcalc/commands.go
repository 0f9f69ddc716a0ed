package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sipcalc/sip-calculator/internal/calculation"
	"github.com/sipcalc/sip-calculator/internal/config"
	"github.com/sipcalc/sip-calculator/internal/output"
	"github.com/sipcalc/sip-calculator/internal/scheduler"
	"github.com/sipcalc/sip-calculator/internal/server"
)

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear recent projections",
	}

	historyCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recent projections, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := openRecorder(cmd.Context())
			if err != nil {
				return err
			}
			defer rec.Close()

			entries := rec.List()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tINVESTED\tVALUE\tID")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.Timestamp.Local().Format("2006-01-02 15:04"),
					output.FormatCurrency(e.TotalInvested, settings.Currency),
					output.FormatCurrency(e.TotalValue, settings.Currency),
					e.ID)
			}
			return w.Flush()
		},
	})

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := openRecorder(cmd.Context())
			if err != nil {
				return err
			}
			defer rec.Close()
			if err := rec.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	})

	return historyCmd
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON/CSV HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = settings.Server.Addr
			}
			ctx := cmd.Context()

			rec, err := openRecorder(ctx)
			if err != nil {
				return err
			}
			defer rec.Close()

			srv := server.New(newEngine(), rec, settings.Currency)
			srv.SetLogger(logger)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe(addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings, :8080)")
	return cmd
}

func newScheduleCmd() *cobra.Command {
	var (
		spec      string
		outputDir string
		formats   []string
		runNow    bool
		once      bool
		record    bool
	)

	cmd := &cobra.Command{
		Use:   "schedule <scenarios.yaml>",
		Short: "Write comparison reports on a cron schedule",
		Long: `Schedule re-reads the scenario file on every run and writes the configured
report formats to the output directory. Cron specs have six fields,
seconds first: "0 0 8 * * 1" is Mondays at 08:00.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			job := &scheduler.ReportJob{
				ScenarioFile: args[0],
				OutputDir:    firstNonEmpty(outputDir, settings.Schedule.OutputDir),
				Formats:      formats,
				Currency:     settings.Currency,
				Engine:       newEngine(),
				Parser:       config.NewInputParser(),
				Logger:       logger,
			}
			if len(job.Formats) == 0 {
				job.Formats = settings.Schedule.Formats
			}
			if record {
				rec, err := openRecorder(ctx)
				if err != nil {
					return err
				}
				defer rec.Close()
				job.Recorder = rec
			}

			s := scheduler.NewScheduler(ctx, job)
			s.SetLogger(logger)

			if once {
				run, err := s.RunNow()
				if err != nil {
					return err
				}
				for _, f := range run.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
				}
				return nil
			}

			if err := s.Register(firstNonEmpty(spec, settings.Schedule.ReportCron)); err != nil {
				return err
			}
			if runNow {
				if _, err := s.RunNow(); err != nil {
					logger.Warnf("initial run failed: %v", err)
				}
			}
			s.Start()
			<-ctx.Done()
			s.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "", "six-field cron spec (default from settings)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "report directory (default from settings)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "report formats (default from settings: html, breakdown-csv)")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "run once immediately, then follow the schedule")
	cmd.Flags().BoolVar(&once, "once", false, "run once and exit")
	cmd.Flags().BoolVar(&record, "record", false, "add every scenario result to the history")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the expected-return presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tEXPECTED RETURN")
			for _, name := range calculation.PresetNames() {
				r, _ := calculation.PresetReturn(name)
				fmt.Fprintf(w, "%s\t%s\n", name, output.FormatPercentage(r))
			}
			return w.Flush()
		},
	}
}

func newExampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config <out.yaml>",
		Short: "Write an example scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(file, args[0]); err != nil {
				return fmt.Errorf("write example config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example scenario file written to %s\n", args[0])
			return nil
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
