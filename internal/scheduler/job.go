package scheduler

import (
	"context"
	"fmt"

	"github.com/sipcalc/sip-calculator/internal/calculation"
	"github.com/sipcalc/sip-calculator/internal/config"
	"github.com/sipcalc/sip-calculator/internal/history"
	"github.com/sipcalc/sip-calculator/internal/output"
)

// ReportJob projects every scenario of a scenario file and writes the
// configured report formats to OutputDir.
type ReportJob struct {
	ScenarioFile string
	OutputDir    string
	Formats      []string
	// Currency is used when the scenario file does not name one.
	Currency string

	Engine   *calculation.ProjectionEngine
	Parser   *config.InputParser
	Recorder *history.Recorder // optional
	Logger   calculation.Logger
}

// ReportRun describes one completed run.
type ReportRun struct {
	Scenarios int
	Files     []string
}

// Run loads the scenario file, computes the comparison and writes one report
// per format. The file is re-read on every run so edits take effect without a
// restart. Formats sharing a file extension are written once.
func (j *ReportJob) Run(ctx context.Context) (*ReportRun, error) {
	logger := calculation.OrNop(j.Logger)
	parser := j.Parser
	if parser == nil {
		parser = config.NewInputParser()
	}
	engine := j.Engine
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	if len(j.Formats) == 0 {
		return nil, fmt.Errorf("report job: no formats configured")
	}

	file, err := parser.LoadFromFile(j.ScenarioFile)
	if err != nil {
		return nil, fmt.Errorf("report job: %w", err)
	}
	if file.Currency == "" {
		file.Currency = j.Currency
	}

	comparison, err := engine.RunScenarios(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("report job: %w", err)
	}

	run := &ReportRun{Scenarios: len(comparison.Scenarios)}
	written := make(map[string]string, len(j.Formats))
	for _, format := range j.Formats {
		ext := output.Extension(format)
		if prev, ok := written[ext]; ok {
			logger.Warnf("report job: skipping format %q, %q already writes .%s files", format, prev, ext)
			continue
		}
		written[ext] = format

		paths, err := output.GenerateReport(comparison, format, j.OutputDir)
		if err != nil {
			return run, fmt.Errorf("report job: format %s: %w", format, err)
		}
		run.Files = append(run.Files, paths...)
	}

	if j.Recorder != nil {
		for _, sc := range comparison.Scenarios {
			if _, err := j.Recorder.Record(ctx, sc.Result); err != nil {
				logger.Warnf("report job: record scenario %q: %v", sc.Name, err)
			}
		}
	}

	logger.Infof("report job: %d scenarios from %s written to %d files", run.Scenarios, j.ScenarioFile, len(run.Files))
	return run, nil
}
