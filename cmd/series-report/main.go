// Command series-report reads a date,value CSV, normalizes it, and writes
// an analytics report as CSV and/or Excel.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"macropulse/internal/chart"
	"macropulse/internal/exporter"
	"macropulse/internal/risk"
	"macropulse/internal/series"
	"macropulse/internal/services"
)

func main() {
	inputPath := flag.String("in", "", "input CSV file with date,value rows")
	outputDir := flag.String("out", "reports", "output directory for generated reports")
	name := flag.String("name", "", "series name for the report (defaults to the input file name)")
	format := flag.String("format", "both", "output format: csv, xlsx, or both")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *inputPath == "" {
		slog.Error("No input file specified", "hint", "use -in path/to/series.csv")
		os.Exit(1)
	}

	switch *format {
	case "csv", "xlsx", "both":
	default:
		slog.Error("Invalid output format", "format", *format)
		os.Exit(1)
	}

	observations, err := loadObservations(*inputPath)
	if err != nil {
		slog.Error("Failed to load observations", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	if len(observations) == 0 {
		slog.Error("Input file contains no observations", "path", *inputPath)
		os.Exit(1)
	}

	reportName := *name
	if reportName == "" {
		reportName = baseName(*inputPath)
	}

	svc := services.NewAnalyticsService(logger, chart.Options{})
	analysis := svc.AnalyzeSeries(context.Background(), observations)
	if len(analysis.Series) == 0 {
		slog.Error("No observations survived normalization", "dropped", len(analysis.Dropped))
		os.Exit(1)
	}

	cadence := series.InferCadence(analysis.Series)
	values := analysis.Series.Values()
	returns := risk.Returns(values)

	report := exporter.SeriesReport{
		Name:                 reportName,
		Series:               analysis.Series,
		Cadence:              cadence,
		Deltas:               analysis.Deltas,
		MaxDrawdown:          risk.MaxDrawdown(values),
		AnnualizedVolatility: risk.AnnualizedVolatility(returns, float64(cadence.PeriodsPerYear())),
	}

	slog.Info("Generating report",
		"name", reportName,
		"observations", len(analysis.Series),
		"dropped", len(analysis.Dropped),
		"cadence", cadence.String())

	if *format == "csv" || *format == "both" {
		w := exporter.NewCSVWriter(*outputDir)
		if err := w.WriteSeriesCSV(reportName+".csv", report); err != nil {
			slog.Error("Failed to write CSV report", "error", err)
			os.Exit(1)
		}
	}
	if *format == "xlsx" || *format == "both" {
		w := exporter.NewExcelWriter(*outputDir)
		if err := w.WriteSeriesWorkbook(reportName+".xlsx", report); err != nil {
			slog.Error("Failed to write Excel report", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Report generation complete", "output_dir", *outputDir)
}

// loadObservations reads date,value records, skipping a header row when
// the first record's value column is not numeric.
func loadObservations(path string) ([]series.Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	observations := make([]series.Observation, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			continue
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: invalid value %q", i+1, record[1])
		}

		observations = append(observations, series.Observation{
			Date:  strings.TrimSpace(record[0]),
			Value: value,
		})
	}

	return observations, nil
}

// baseName strips the directory and extension from a path.
func baseName(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
