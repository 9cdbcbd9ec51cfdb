package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKPIs_EmptyOverview(t *testing.T) {
	rec := ExtractKPIs(nil)
	assert.True(t, rec.Empty())
}

func TestExtractKPIs_Counterparts(t *testing.T) {
	rec := ExtractKPIs([]TopicFinding{
		{Topic: "Partes del contrato", Answer: "Acme S.A.; Globex Corp, Initech\n• Umbrella LLC"},
	})

	assert.Equal(t, []string{"Acme S.A.", "Globex Corp", "Initech", "Umbrella LLC"}, rec.Counterparts)
	assert.Empty(t, rec.Dates)
	assert.Empty(t, rec.Money)
}

func TestExtractKPIs_Dates(t *testing.T) {
	rec := ExtractKPIs([]TopicFinding{
		{Topic: "Fecha de firma", Answer: "2024-09-12; 01/15/2025"},
	})

	assert.Equal(t, []string{"2024-09-12", "01/15/2025"}, rec.Dates)
}

func TestExtractKPIs_DateFormats(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []string
	}{
		{"iso dashes", "firmado el 2023-01-31", []string{"2023-01-31"}},
		{"iso slashes", "2024/12/05", []string{"2024/12/05"}},
		{"day first", "31-01-2023", []string{"31-01-2023"}},
		{"month first", "01/15/2025", []string{"01/15/2025"}},
		{"year out of range", "1999-05-05 y 2100-05-05", nil},
		{"month out of range", "2024-13-05", nil},
		{"no dates", "sin fecha definida", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ExtractKPIs([]TopicFinding{{Topic: "date", Answer: tt.answer}})
			assert.Equal(t, tt.want, rec.Dates)
		})
	}
}

func TestExtractKPIs_Money(t *testing.T) {
	rec := ExtractKPIs([]TopicFinding{
		{Topic: "Monto", Answer: "$1,200.50 and MXN 300"},
	})

	require.Len(t, rec.Money, 2)
	assert.Equal(t, MoneyEntry{Amount: 1200.50, Currency: "USD", Context: "Monto"}, rec.Money[0])
	assert.Equal(t, MoneyEntry{Amount: 300, Currency: "MXN", Context: "Monto"}, rec.Money[1])
}

func TestExtractKPIs_MoneyFormats(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		amount   float64
		currency string
	}{
		{"dollar thousands", "$1,200.50", 1200.50, "USD"},
		{"european grouping", "EUR 1.200,50", 1200.50, "EUR"},
		{"bare integer", "MXN 300", 300, "MXN"},
		{"grouped integer", "USD 10,000", 10000, "USD"},
		{"decimal only", "$99.99", 99.99, "USD"},
		{"large grouped", "MXN 1,234,567.89", 1234567.89, "MXN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ExtractKPIs([]TopicFinding{{Topic: "amount", Answer: tt.answer}})
			require.Len(t, rec.Money, 1)
			assert.InDelta(t, tt.amount, rec.Money[0].Amount, 1e-9)
			assert.Equal(t, tt.currency, rec.Money[0].Currency)
		})
	}
}

func TestExtractKPIs_MoneyNotDeduplicated(t *testing.T) {
	rec := ExtractKPIs([]TopicFinding{
		{Topic: "Importe", Answer: "$500.00 adelanto; $500.00 liquidación"},
	})

	require.Len(t, rec.Money, 2)
	assert.Equal(t, rec.Money[0].Amount, rec.Money[1].Amount)
}

func TestExtractKPIs_MultiBucketTopic(t *testing.T) {
	// A topic naming both a date and a place feeds both buckets.
	rec := ExtractKPIs([]TopicFinding{
		{Topic: "Fecha y lugar de firma", Answer: "2024-03-01, Ciudad de México"},
	})

	assert.Equal(t, []string{"2024-03-01"}, rec.Dates)
	assert.Equal(t, []string{"2024-03-01", "Ciudad de México"}, rec.Places)
}

func TestExtractKPIs_DeduplicatesPreservingOrder(t *testing.T) {
	rec := ExtractKPIs([]TopicFinding{
		{Topic: "counterparties", Answer: "Acme; Globex"},
		{Topic: "contrapartes", Answer: "Globex;  Acme ; Initech"},
	})

	assert.Equal(t, []string{"Acme", "Globex", "Initech"}, rec.Counterparts)
}

func TestExtractKPIs_ErrorsDeduplicated(t *testing.T) {
	rec := ExtractKPIs([]TopicFinding{
		{Topic: "Inconsistencias", Answer: "firma faltante; firma faltante; cláusula ambigua"},
	})

	assert.Equal(t, []string{"firma faltante", "cláusula ambigua"}, rec.Errors)
}

func TestExtractKPIs_Idempotent(t *testing.T) {
	findings := []TopicFinding{
		{Topic: "Partes", Answer: "Acme; Globex"},
		{Topic: "Monto total", Answer: "MXN 1,500"},
		{Topic: "Fecha", Answer: "2024-06-30"},
	}

	first := ExtractKPIs(findings)
	second := ExtractKPIs(findings)
	assert.Equal(t, first, second)
}

func TestExtractKPIs_UnknownTopicIgnored(t *testing.T) {
	rec := ExtractKPIs([]TopicFinding{
		{Topic: "Resumen general", Answer: "contrato de arrendamiento $1,000"},
	})

	assert.True(t, rec.Empty())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,200.50", 1200.50, true},
		{"1.200,50", 1200.50, true},
		{"1,200", 1200, true},
		{"1.200", 1200, true},
		{"300", 300, true},
		{"99,99", 99.99, true},
		{"1,234,567", 1234567, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseAmount(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestResolveCurrency(t *testing.T) {
	assert.Equal(t, "MXN", resolveCurrency("mxn 300", "mxn"))
	assert.Equal(t, "EUR", resolveCurrency("EUR 300", "EUR"))
	assert.Equal(t, "USD", resolveCurrency("usd 300", "usd"))
	assert.Equal(t, "USD", resolveCurrency("$300", "$"))
}
