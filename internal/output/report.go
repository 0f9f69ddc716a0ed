package output

import (
	"github.com/sipcalc/sip-calculator/internal/domain"
)

// GenerateReport writes results in the named format (or "all") to a
// timestamped file in dir and returns the written paths.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range []string{"console", "breakdown-csv", "html"} {
			p, err := WriteFormatted(GetFormatterByName(name), results, dir, Extension(name))
			if err != nil {
				return paths, err
			}
			paths = append(paths, p)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormat(format)
	}
	p, err := WriteFormatted(f, results, dir, Extension(format))
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}
