package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.TotalDocs)
	assert.Equal(t, 0, summary.WithOverview)
	assert.Empty(t, summary.MoneyTotals)
}

func TestSummarize_Rollup(t *testing.T) {
	docs := []Document{
		{
			ID:        "d1",
			SizeBytes: 1024,
			Overview: []TopicFinding{
				{Topic: "Partes", Answer: "Acme; Globex"},
				{Topic: "Monto", Answer: "MXN 1,000"},
				{Topic: "Inconsistencias", Answer: "firma faltante"},
			},
		},
		{
			ID:        "d2",
			SizeBytes: 2048,
			Overview: []TopicFinding{
				{Topic: "Counterparties", Answer: "Globex; Initech"},
				{Topic: "Monto", Answer: "MXN 500; $20.00"},
			},
		},
		{ID: "d3", SizeBytes: 100},
	}

	summary := Summarize(docs)
	assert.Equal(t, 3, summary.TotalDocs)
	assert.Equal(t, 2, summary.WithOverview)
	assert.Equal(t, 3, summary.UniqueCounterparts)
	assert.Equal(t, 1, summary.RiskFlags)
	assert.InDelta(t, 1500, summary.MoneyTotals["MXN"], 1e-9)
	assert.InDelta(t, 20, summary.MoneyTotals["USD"], 1e-9)
	assert.Equal(t, int64(3172), summary.TotalBytes)
}
