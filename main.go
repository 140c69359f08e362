package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"psychstats/adapters/render"
	"psychstats/adapters/tabular"
	"psychstats/app"
	"psychstats/domain/report"
	"psychstats/internal"
	"psychstats/internal/config"
	"psychstats/ports"
)

func main() {
	// Load .env file if present (ignore error in production)
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	logger.Info("loading %d experiment files", len(appConfig.Data.Files))

	reader := tabular.NewDataReader(logger)
	table, err := reader.LoadExperiments(context.Background(), appConfig.Data.Files)
	if err != nil {
		log.Fatalf("Failed to load experiments: %v", err)
	}

	analyzer, err := app.NewAnalyzer(appConfig.Data.NTrials, logger)
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}

	rep, err := analyzer.Summarize(table)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if err := (render.TextSink{}).Write(os.Stdout, rep); err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}

	if appConfig.Output.CSVPath != "" {
		if err := writeSink(render.CSVSink{}, appConfig.Output.CSVPath, rep); err != nil {
			log.Fatalf("Failed to write CSV report: %v", err)
		}
		logger.Info("report CSV written to %s", appConfig.Output.CSVPath)
	}
	if appConfig.Output.HTMLPath != "" {
		if err := writeSink(render.HTMLSink{}, appConfig.Output.HTMLPath, rep); err != nil {
			log.Fatalf("Failed to write HTML report: %v", err)
		}
		logger.Info("report HTML written to %s", appConfig.Output.HTMLPath)
	}
}

func writeSink(sink ports.ReportSink, path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sink.Write(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
