package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"psychstats/adapters/render"
	"psychstats/adapters/tabular"
	"psychstats/app"
	"psychstats/internal"
	"psychstats/internal/testkit"
	"psychstats/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "psychstats",
		Short: "Summary-statistics reports for matching-task experiments",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newRenderCmd(),
		newSynthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var files []string
	var nTrials int
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the six-row summary report from experiment files",
		Long: `Load one or more experiment files (CSV or XLSX), concatenate them,
and compute per-condition descriptives, Welch's t-tests, Cohen's d and
d-prime sensitivity.

Example: psychstats analyze --file exp1.csv --file exp2.csv --format csv --out report.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) == 0 {
				return fmt.Errorf("at least one --file is required")
			}

			logger := internal.NewDefaultLogger()
			reader := tabular.NewDataReader(logger)
			table, err := reader.LoadExperiments(context.Background(), files)
			if err != nil {
				return err
			}

			analyzer, err := app.NewAnalyzer(nTrials, logger)
			if err != nil {
				return err
			}
			rep, err := analyzer.Summarize(table)
			if err != nil {
				return err
			}

			sink, err := sinkFor(format)
			if err != nil {
				return err
			}
			return writeTo(out, func(w io.Writer) error {
				return sink.Write(w, rep)
			})
		},
	}

	cmd.Flags().StringArrayVar(&files, "file", nil, "experiment data file (repeatable)")
	cmd.Flags().IntVar(&nTrials, "n-trials", app.DefaultNTrials, "trials per stimulus type")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, csv, markdown, html")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "render [report.csv]",
		Short: "Re-render an exported report CSV in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rep, err := render.ParseCSV(f)
			if err != nil {
				return err
			}

			sink, err := sinkFor(format)
			if err != nil {
				return err
			}
			return writeTo(out, func(w io.Writer) error {
				return sink.Write(w, rep)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, csv, markdown, html")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func newSynthCmd() *cobra.Command {
	cfg := testkit.DefaultGeneratorConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate a synthetic experiment file for demos and tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := testkit.GenerateExperiment(cfg)
			return writeTo(out, func(w io.Writer) error {
				return testkit.WriteCSV(w, table)
			})
		},
	}

	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	cmd.Flags().IntVar(&cfg.ParticipantsPerCondition, "participants", cfg.ParticipantsPerCondition, "participants per condition")
	cmd.Flags().IntVar(&cfg.NTrials, "n-trials", cfg.NTrials, "trials per stimulus type")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func sinkFor(format string) (ports.ReportSink, error) {
	switch format {
	case "table":
		return render.TextSink{}, nil
	case "csv":
		return render.CSVSink{}, nil
	case "markdown":
		return render.MarkdownSink{}, nil
	case "html":
		return render.HTMLSink{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func writeTo(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
