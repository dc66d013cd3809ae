// Command processor runs one analytics query over a UIDAI dataset directory
// and prints the resulting table, optionally exporting it to CSV or JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"

	"aadhaarcli/internal/config"
	"aadhaarcli/internal/exporter"
	"aadhaarcli/internal/infrastructure"
	"aadhaarcli/internal/metrics"
	"aadhaarcli/internal/pipeline"
)

func main() {
	dataDir := flag.String("data", "", "dataset root directory (defaults to the configured data dir)")
	category := flag.String("category", "", "dataset category: enrolment, biometric or demographic")
	view := flag.String("view", "date", "aggregation view: date or state")
	state := flag.String("state", "", "restrict the date view to one state")
	from := flag.String("from", "", "start date for the state view (YYYY-MM-DD)")
	to := flag.String("to", "", "end date for the state view (YYYY-MM-DD)")
	outCSV := flag.String("out", "", "write the table to this CSV file")
	outJSON := flag.String("json", "", "write the table and metadata to this JSON file")
	list := flag.Bool("list", false, "list available dataset directories and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{}
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	m := metrics.New(prometheus.DefaultRegisterer)
	p := pipeline.New(cfg.Paths, logger, m)
	ctx := context.Background()

	if *list {
		datasets, err := p.Datasets(ctx)
		if err != nil {
			logger.Error("failed to list datasets", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, name := range datasets {
			fmt.Println(name)
		}
		return
	}

	if *category == "" {
		fmt.Fprintln(os.Stderr, "missing required -category flag")
		flag.Usage()
		os.Exit(2)
	}

	result, err := p.Run(ctx, pipeline.Request{
		Category:  *category,
		View:      pipeline.View(*view),
		State:     *state,
		StartDate: *from,
		EndDate:   *to,
	})
	if err != nil {
		logger.Error("pipeline run failed",
			slog.String("category", *category),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	var table exporter.Table
	switch result.View {
	case pipeline.ViewDate:
		table = exporter.TimeSeriesTable(*result.Series)
	case pipeline.ViewState:
		table = exporter.RegionTable(*result.Regions)
	}

	printTable(table)
	fmt.Printf("\nstates: %d  date range: %s .. %s\n",
		len(result.Meta.Regions), result.Meta.MinDateISO(), result.Meta.MaxDateISO())

	writer := exporter.NewWriter(cfg.Paths.ExportsDir, logger)
	if *outCSV != "" {
		if err := writer.WriteCSV(*outCSV, table); err != nil {
			logger.Error("CSV export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if *outJSON != "" {
		if err := writer.WriteJSON(*outJSON, table, result.Meta); err != nil {
			logger.Error("JSON export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

// printTable writes an aligned table to stdout.
func printTable(table exporter.Table) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for i, header := range table.Headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, header)
	}
	fmt.Fprintln(w)

	for _, row := range table.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
}
