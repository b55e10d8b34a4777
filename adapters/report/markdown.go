// Package report renders a completed sweep as a markdown document: the
// overall performance summary table plus per-gear enhancement ratios
// against the baseline gear.
package report

import (
	"fmt"
	"strings"

	"fluxgear/domain/sim"
	"fluxgear/ports"
)

// Builder renders sweep records to markdown.
type Builder struct {
	// Rounding is the decimal precision applied to table values. Rounding is
	// presentation only; stored results are never rounded.
	Rounding int
}

// NewBuilder creates a markdown report builder
func NewBuilder(rounding int) *Builder {
	return &Builder{Rounding: rounding}
}

// Render produces the full markdown report for one sweep record. A zero
// metrics value (GearCount 0) omits the summary-statistics section.
func (b *Builder) Render(record ports.SweepRecord, metrics sim.Metrics) string {
	var sb strings.Builder

	sb.WriteString("# Gear-Shifting Performance Summary\n\n")
	sb.WriteString(fmt.Sprintf("Sweep `%s`, run at %s.\n\n", record.ID.String(), record.CreatedAt.String()))

	b.writeResultsTable(&sb, record.Results)
	b.writeMetrics(&sb, metrics)
	b.writeFoldChanges(&sb, record.FoldChanges)

	return sb.String()
}

func (b *Builder) writeResultsTable(sb *strings.Builder, results []sim.Result) {
	sb.WriteString("| Gear | Growth Rate (1/h) | ATP Production (mmol/gDW/h) | Glucose Uptake (mmol/gDW/h) | Lactate Production (mmol/gDW/h) | Ethanol Production (mmol/gDW/h) |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			r.Gear,
			b.num(r.GrowthRate),
			b.num(r.ATPFlux),
			b.num(r.GlucoseFlux),
			b.num(r.LactateFlux),
			b.num(r.EthanolFlux),
		))
	}
	sb.WriteString("\n")
}

func (b *Builder) writeMetrics(sb *strings.Builder, metrics sim.Metrics) {
	if metrics.GearCount == 0 {
		return
	}
	sb.WriteString("## Sweep Metrics\n\n")
	sb.WriteString(fmt.Sprintf("- Gears swept: %d\n", metrics.GearCount))
	sb.WriteString(fmt.Sprintf("- Mean growth rate: %s 1/h\n", b.num(metrics.MeanGrowth)))
	sb.WriteString(fmt.Sprintf("- Peak growth rate: %s 1/h\n", b.num(metrics.PeakGrowth)))
	sb.WriteString(fmt.Sprintf("- Growth rate std dev: %s\n", b.num(metrics.GrowthStdDev)))
	sb.WriteString(fmt.Sprintf("- Peak ATP production: %s mmol/gDW/h\n", b.num(metrics.PeakATP)))
	sb.WriteString(fmt.Sprintf("- Peak fermentation: %s mmol/gDW/h\n\n", b.num(metrics.PeakFermentation)))
}

func (b *Builder) writeFoldChanges(sb *strings.Builder, folds []sim.FoldChange) {
	if len(folds) == 0 {
		return
	}
	sb.WriteString("## Enhancements vs baseline\n\n")
	for _, f := range folds {
		sb.WriteString(fmt.Sprintf("**%s**\n\n", f.Gear))
		sb.WriteString(fmt.Sprintf("- Glucose uptake: %.1fx\n", f.GlucoseUptakeFold))
		sb.WriteString(fmt.Sprintf("- ATP production: %.1fx\n", f.ATPProductionFold))
		sb.WriteString(fmt.Sprintf("- Growth rate: %.1fx\n\n", f.GrowthRateFold))
	}
}

func (b *Builder) num(v float64) string {
	return fmt.Sprintf("%.*f", b.Rounding, v)
}
