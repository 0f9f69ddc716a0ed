package main

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/sipcalc/sip-calculator/internal/calculation"
	"github.com/sipcalc/sip-calculator/internal/config"
	"github.com/sipcalc/sip-calculator/internal/domain"
	"github.com/sipcalc/sip-calculator/internal/output"
)

// projectionFlags maps CLI flags onto the shareable query parameters so both
// entry points parse inputs the same way.
type projectionFlags struct {
	values map[string]*string
	query  string
	preset string
	clamp  bool
}

var projectionFlagParams = []struct {
	flag, param, usage string
}{
	{"monthly-investment", config.ParamMonthlyInvestment, "monthly SIP amount (default 500)"},
	{"expected-return", config.ParamExpectedReturn, "expected annual return in % (default 12)"},
	{"time-period", config.ParamTimePeriod, "investment horizon in years (default 10)"},
	{"step-up", config.ParamStepUpPercentage, "annual increase of the monthly amount in %"},
	{"inflation", config.ParamInflationRate, "annual inflation in % (default 6)"},
	{"lumpsum", config.ParamInitialLumpsum, "one-time initial investment"},
	{"expense-ratio", config.ParamExpenseRatio, "annual fund expense ratio in %"},
	{"tax-rate", config.ParamTaxRate, "tax on gains in %"},
	{"target", config.ParamTargetAmount, "goal amount (0 disables goal tracking)"},
}

func (p *projectionFlags) register(cmd *cobra.Command) {
	p.values = make(map[string]*string, len(projectionFlagParams))
	for _, f := range projectionFlagParams {
		p.values[f.param] = cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().StringVar(&p.query, "query", "", "start from a shared query string (flags override it)")
	cmd.Flags().StringVar(&p.preset, "preset", "", "return preset: conservative, moderate or aggressive")
	cmd.Flags().BoolVar(&p.clamp, "clamp", false, "pin out-of-range inputs to the nearest limit instead of failing")
}

// config builds and checks the investment config described by the flags.
func (p *projectionFlags) config() (domain.InvestmentConfig, error) {
	values, err := url.ParseQuery(p.query)
	if err != nil {
		return domain.InvestmentConfig{}, fmt.Errorf("parse --query: %w", err)
	}
	for param, v := range p.values {
		if *v != "" {
			values.Set(param, *v)
		}
	}

	cfg, err := config.FromQuery(values)
	if err != nil {
		return cfg, err
	}
	if p.preset != "" {
		if cfg, err = calculation.ApplyPreset(cfg, p.preset); err != nil {
			return cfg, err
		}
	}

	parser := config.NewInputParser()
	if p.clamp {
		return parser.Clamp(cfg), nil
	}
	return cfg, parser.ValidateInvestmentConfig(cfg)
}

func newEngine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	engine.SetLogger(logger)
	return engine
}

func newProjectCmd() *cobra.Command {
	var (
		flags     projectionFlags
		name      string
		format    string
		outputDir string
		record    bool
		share     bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a single SIP",
		Example: `  sipcalc project --monthly-investment 10000 --time-period 20 --step-up 10
  sipcalc project --preset aggressive --target 5000000 --format console
  sipcalc project --query "monthlyInvestment=500&timePeriod=15" --share`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}

			file := &domain.ScenarioFile{
				Currency:  settings.Currency,
				Scenarios: []domain.Scenario{{Name: name, Config: cfg}},
			}
			comparison, err := newEngine().RunScenarios(cmd.Context(), file)
			if err != nil {
				return err
			}

			if err := emit(cmd.OutOrStdout(), comparison, format, outputDir); err != nil {
				return err
			}
			if share {
				fmt.Fprintf(cmd.OutOrStdout(), "\nShare: ?%s\n", config.ToQuery(cfg).Encode())
			}
			if record {
				rec, err := openRecorder(cmd.Context())
				if err != nil {
					return err
				}
				defer rec.Close()
				entry, err := rec.Record(cmd.Context(), comparison.Scenarios[0].Result)
				if err != nil {
					return err
				}
				logger.Infof("recorded %s", entry.Label)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "Projection", "scenario name shown in reports")
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file here instead of stdout")
	cmd.Flags().BoolVar(&record, "record", false, "add the result to the history")
	cmd.Flags().BoolVar(&share, "share", false, "print a query string that reproduces this projection")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var (
		format    string
		outputDir string
		record    bool
	)

	cmd := &cobra.Command{
		Use:   "compare <scenarios.yaml>",
		Short: "Project and rank every scenario in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if file.Currency == "" {
				file.Currency = settings.Currency
			}
			comparison, err := newEngine().RunScenarios(cmd.Context(), file)
			if err != nil {
				return err
			}
			if err := emit(cmd.OutOrStdout(), comparison, format, outputDir); err != nil {
				return err
			}
			if !record {
				return nil
			}
			rec, err := openRecorder(cmd.Context())
			if err != nil {
				return err
			}
			defer rec.Close()
			for _, sc := range comparison.Scenarios {
				if _, err := rec.Record(cmd.Context(), sc.Result); err != nil {
					return err
				}
			}
			logger.Infof("recorded %d scenarios", len(comparison.Scenarios))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format, or \"all\" with --output-dir")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write timestamped report files here instead of stdout")
	cmd.Flags().BoolVar(&record, "record", false, "add every scenario result to the history")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		flags    projectionFlags
		scenario string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "export [scenarios.yaml]",
		Short: "Export the year-by-year breakdown as CSV",
		Long: `Export writes the yearly breakdown of one projection as CSV. The projection
comes from the flags, or from a scenario file (first scenario unless
--scenario names another).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg domain.InvestmentConfig
			if len(args) == 1 {
				c, err := scenarioConfig(args[0], scenario)
				if err != nil {
					return err
				}
				cfg = c
			} else {
				c, err := flags.config()
				if err != nil {
					return err
				}
				cfg = c
			}

			result := newEngine().Compute(cfg)
			if out == "-" {
				return output.WriteBreakdownCSV(cmd.OutOrStdout(), result.Breakdown)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := output.WriteBreakdownCSV(f, result.Breakdown); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Breakdown written to %s\n", out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario name when exporting from a file")
	cmd.Flags().StringVar(&out, "out", output.BreakdownFilename, "output path, - for stdout")
	return cmd
}

// scenarioConfig loads path and returns the effective config of the named
// scenario, or of the first one when name is empty.
func scenarioConfig(path, name string) (domain.InvestmentConfig, error) {
	file, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return domain.InvestmentConfig{}, err
	}
	for _, sc := range file.Scenarios {
		if name != "" && sc.Name != name {
			continue
		}
		if sc.Preset == "" {
			return sc.Config, nil
		}
		return calculation.ApplyPreset(sc.Config, sc.Preset)
	}
	return domain.InvestmentConfig{}, fmt.Errorf("scenario %q not found in %s", name, path)
}

// emit prints the report to w, or writes report files to dir when set.
func emit(w io.Writer, comparison *domain.ScenarioComparison, format, dir string) error {
	if dir != "" {
		paths, err := output.GenerateReport(comparison, format, dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(w, "Report written to %s\n", p)
		}
		return nil
	}

	if output.NormalizeFormatName(format) == "all" {
		return fmt.Errorf("format \"all\" writes several files and needs --output-dir")
	}
	f, err := output.LookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(comparison)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
