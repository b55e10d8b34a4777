// Command sweep runs the five-gear metabolic sweep once against the
// emulated model, prints the markdown performance summary, and optionally
// writes the xlsx workbook report.
package main

import (
	"context"
	"fmt"
	"log"

	"fluxgear/adapters/excel"
	"fluxgear/adapters/report"
	"fluxgear/app"
	"fluxgear/internal/config"
	"fluxgear/internal/testkit"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	kit := testkit.NewKit()
	sweepService := app.NewSweepService(kit.Repository())

	ctx := context.Background()
	record, err := sweepService.Run(ctx, kit.NewModel(), kit.Gears())
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	aggregator := app.NewAggregator()
	metrics, err := aggregator.Summarize(record.Results)
	if err != nil {
		log.Fatalf("Failed to summarize sweep: %v", err)
	}

	builder := report.NewBuilder(appConfig.Report.Rounding)
	fmt.Print(builder.Render(*record, metrics))

	if appConfig.Report.XLSXPath != "" {
		uptakes, penalties := aggregator.PenaltyCurve(250, 101)

		writer := excel.NewReportWriter(appConfig.Report.Rounding)
		if err := writer.Write(appConfig.Report.XLSXPath, *record, uptakes, penalties); err != nil {
			log.Fatalf("Failed to write workbook report: %v", err)
		}
		log.Printf("Workbook report written to %s", appConfig.Report.XLSXPath)
	}
}
