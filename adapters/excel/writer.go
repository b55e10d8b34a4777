// Package excel writes a sweep record to an xlsx workbook: one sheet of
// per-gear results, one of fold changes, one of capacity-penalty curve
// samples, plus embedded charts mirroring the report figures.
package excel

import (
	"fmt"
	"math"

	"fluxgear/domain/sim"
	"fluxgear/ports"

	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Results"
	foldsSheet   = "Fold Changes"
	curveSheet   = "Penalty Curve"
)

// ReportWriter writes sweep workbooks.
type ReportWriter struct {
	rounding int
}

// NewReportWriter creates a report writer with the given decimal precision
func NewReportWriter(rounding int) *ReportWriter {
	return &ReportWriter{rounding: rounding}
}

// Write renders the record (and optional penalty-curve samples) to path.
func (w *ReportWriter) Write(path string, record ports.SweepRecord, curveUptakes, curvePenalties []float64) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeResults(f, record.Results); err != nil {
		return fmt.Errorf("write results sheet: %w", err)
	}
	if err := w.writeFoldChanges(f, record.FoldChanges); err != nil {
		return fmt.Errorf("write fold changes sheet: %w", err)
	}
	if len(curveUptakes) > 0 {
		if err := w.writeCurve(f, curveUptakes, curvePenalties); err != nil {
			return fmt.Errorf("write penalty curve sheet: %w", err)
		}
	}

	// The default sheet is replaced by the results sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if idx, err := f.GetSheetIndex(resultsSheet); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeResults(f *excelize.File, results []sim.Result) error {
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return err
	}

	headers := []string{
		"Gear",
		"Growth Rate (1/h)",
		"ATP Production (mmol/gDW/h)",
		"Glucose Uptake (mmol/gDW/h)",
		"Lactate Production (mmol/gDW/h)",
		"Ethanol Production (mmol/gDW/h)",
	}
	if err := writeHeaderRow(f, resultsSheet, headers); err != nil {
		return err
	}

	for i, r := range results {
		row := i + 2
		values := []interface{}{
			r.Gear,
			w.round(r.GrowthRate),
			w.round(r.ATPFlux),
			w.round(r.GlucoseFlux),
			w.round(r.LactateFlux),
			w.round(r.EthanolFlux),
		}
		if err := writeRow(f, resultsSheet, row, values); err != nil {
			return err
		}
	}

	n := len(results)
	if n == 0 {
		return nil
	}

	// Growth rate against uptake magnitude, the headline figure.
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", resultsSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", resultsSheet, n+1),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", resultsSheet, n+1),
		}},
		Title: []excelize.RichTextRun{{Text: "Growth Rate Across Metabolic Gears"}},
	}
	return f.AddChart(resultsSheet, "H2", chart)
}

func (w *ReportWriter) writeFoldChanges(f *excelize.File, folds []sim.FoldChange) error {
	if _, err := f.NewSheet(foldsSheet); err != nil {
		return err
	}

	headers := []string{"Gear", "Glucose Uptake Fold", "ATP Production Fold", "Growth Rate Fold"}
	if err := writeHeaderRow(f, foldsSheet, headers); err != nil {
		return err
	}

	for i, fc := range folds {
		row := i + 2
		values := []interface{}{
			fc.Gear,
			w.round(fc.GlucoseUptakeFold),
			w.round(fc.ATPProductionFold),
			w.round(fc.GrowthRateFold),
		}
		if err := writeRow(f, foldsSheet, row, values); err != nil {
			return err
		}
	}

	n := len(folds)
	if n == 0 {
		return nil
	}

	series := make([]excelize.ChartSeries, 0, 3)
	for _, col := range []string{"B", "C", "D"} {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", foldsSheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", foldsSheet, n+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", foldsSheet, col, col, n+1),
		})
	}
	chart := &excelize.Chart{
		Type:   excelize.Col,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Fold Changes Relative to Baseline Gear"}},
	}
	return f.AddChart(foldsSheet, "G2", chart)
}

func (w *ReportWriter) writeCurve(f *excelize.File, uptakes, penalties []float64) error {
	if _, err := f.NewSheet(curveSheet); err != nil {
		return err
	}

	if err := writeHeaderRow(f, curveSheet, []string{"Glucose Uptake (mmol/gDW/h)", "Capacity Penalty"}); err != nil {
		return err
	}
	for i := range uptakes {
		if err := writeRow(f, curveSheet, i+2, []interface{}{uptakes[i], penalties[i]}); err != nil {
			return err
		}
	}

	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", curveSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", curveSheet, len(uptakes)+1),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", curveSheet, len(uptakes)+1),
		}},
		Title: []excelize.RichTextRun{{Text: "Biomass Capacity Penalty vs Glucose Uptake"}},
	}
	return f.AddChart(curveSheet, "E2", chart)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) round(v float64) float64 {
	p := math.Pow10(w.rounding)
	return math.Round(v*p) / p
}
