package services

import (
	"strconv"
	"strings"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
)

// FormatKPIText renders a KPI record as a plain-text summary, one line per
// non-empty bucket. An empty record yields a single placeholder line.
func FormatKPIText(rec domain.KPIRecord) string {
	var b strings.Builder

	writeLine := func(label string, values []string) {
		if len(values) == 0 {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(strings.Join(values, "; "))
		b.WriteString("\n")
	}

	writeLine("Counterparties", rec.Counterparts)
	writeLine("Dates", rec.Dates)
	writeLine("Amounts", formatMoney(rec.Money))
	writeLine("Places", rec.Places)
	writeLine("Flags", rec.Errors)

	if b.Len() == 0 {
		return "No KPIs extracted.\n"
	}
	return b.String()
}

// FormatKPICSV renders a KPI record as CSV with fixed columns field,value:
// one row per bucket, bucket values joined with "; ", quoted with internal
// quotes doubled.
func FormatKPICSV(rec domain.KPIRecord) string {
	var b strings.Builder
	b.WriteString("field,value\n")

	writeRow := func(field string, values []string) {
		b.WriteString(field)
		b.WriteString(",")
		b.WriteString(csvQuote(strings.Join(values, "; ")))
		b.WriteString("\n")
	}

	writeRow("counterparts", rec.Counterparts)
	writeRow("dates", rec.Dates)
	writeRow("money", formatMoney(rec.Money))
	writeRow("places", rec.Places)
	writeRow("errors", rec.Errors)
	return b.String()
}

// formatMoney renders money entries as "amount CUR" strings.
func formatMoney(entries []domain.MoneyEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = strconv.FormatFloat(e.Amount, 'f', -1, 64) + " " + e.Currency
	}
	return out
}

// csvQuote wraps a value in double quotes, doubling internal quotes.
func csvQuote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
