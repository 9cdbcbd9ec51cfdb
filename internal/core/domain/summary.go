package domain

import "strings"

// KPISummary is a cross-document rollup of extracted KPIs.
type KPISummary struct {
	// TotalDocs is the number of documents considered.
	TotalDocs int

	// WithOverview is how many of them carried analysis findings.
	WithOverview int

	// UniqueCounterparts is the count of distinct counterparty names.
	UniqueCounterparts int

	// RiskFlags is the total number of error/inconsistency entries.
	RiskFlags int

	// MoneyTotals sums amounts per currency code.
	MoneyTotals map[string]float64

	// TotalBytes is the combined raw size of the documents.
	TotalBytes int64
}

// Summarize aggregates KPI records across a set of documents.
// Counterparty names are compared trimmed, matching the per-document
// de-duplication rule.
func Summarize(docs []Document) KPISummary {
	summary := KPISummary{
		TotalDocs:   len(docs),
		MoneyTotals: make(map[string]float64),
	}

	counterparts := make(map[string]struct{})
	for _, doc := range docs {
		summary.TotalBytes += doc.SizeBytes
		if len(doc.Overview) == 0 {
			continue
		}
		summary.WithOverview++

		rec := ExtractKPIs(doc.Overview)
		for _, cp := range rec.Counterparts {
			counterparts[strings.TrimSpace(cp)] = struct{}{}
		}
		summary.RiskFlags += len(rec.Errors)
		for _, entry := range rec.Money {
			summary.MoneyTotals[entry.Currency] += entry.Amount
		}
	}

	summary.UniqueCounterparts = len(counterparts)
	return summary
}
