package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoneyEntry is one monetary amount found in an answer body.
// Entries are never de-duplicated: the same amount appearing twice in a
// contract is two distinct facts.
type MoneyEntry struct {
	// Amount is the parsed numeric value. Always finite.
	Amount float64

	// Currency is the resolved ISO-ish code (MXN, EUR, USD, ...).
	Currency string

	// Context is the topic the amount was found under.
	Context string
}

// KPIRecord is the structured projection of a document's overview.
// Counterparts, Dates, Places and Errors are de-duplicated preserving
// first-seen order; Money is not.
type KPIRecord struct {
	Counterparts []string
	Dates        []string
	Places       []string
	Errors       []string
	Money        []MoneyEntry
}

// Empty reports whether no bucket holds anything.
func (r KPIRecord) Empty() bool {
	return len(r.Counterparts) == 0 && len(r.Dates) == 0 &&
		len(r.Places) == 0 && len(r.Errors) == 0 && len(r.Money) == 0
}

// Bucket keyword tables. Topic labels are bilingual in practice
// ("Fecha de firma", "Counterparties"), so each bucket carries English
// and Spanish synonyms matched as case-insensitive substrings.
var (
	counterpartKeywords = []string{"counterpart", "partes", "contraparte"}
	dateKeywords        = []string{"fecha", "date"}
	moneyKeywords       = []string{"monto", "cantidad", "importe", "amount"}
	placeKeywords       = []string{"lugar", "domicilio", "place", "ubicación"}
	errorKeywords       = []string{"error", "inconsistencia", "issue"}
)

// dateRe accepts ISO-style YYYY-MM-DD / YYYY/MM/DD and two-digit-first
// forms with either day or month leading, years 2000-2099. The source
// text never disambiguates day-first from month-first, so both orders
// are accepted.
var dateRe = regexp.MustCompile(
	`20\d{2}[-/](?:0[1-9]|1[0-2])[-/](?:0[1-9]|[12]\d|3[01])` +
		`|(?:0[1-9]|[12]\d|3[01])[-/](?:0[1-9]|1[0-2])[-/]20\d{2}` +
		`|(?:0[1-9]|1[0-2])[-/](?:0[1-9]|[12]\d|3[01])[-/]20\d{2}`)

// moneyRe matches a currency marker followed by a grouped or bare amount.
// Amounts may use either `.` or `,` as thousands and decimal separators.
var moneyRe = regexp.MustCompile(
	`(?i)(\$|MXN|USD|EUR)\s*(\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{2})?|\d+(?:[.,]\d{2})?)`)

// listSeparators split free-text answers into individual entries.
func listSeparators(r rune) bool {
	return r == ';' || r == ',' || r == '•' || r == '\n'
}

// ExtractKPIs projects an overview onto a structured KPI record.
// Bucket tests are independent: a single finding may feed several buckets.
// Malformed or unmatched text yields empty buckets, never an error.
func ExtractKPIs(findings []TopicFinding) KPIRecord {
	var rec KPIRecord

	for _, f := range findings {
		topic := strings.ToLower(f.Topic)

		if topicMatches(topic, counterpartKeywords) {
			rec.Counterparts = append(rec.Counterparts, splitList(f.Answer)...)
		}
		if topicMatches(topic, dateKeywords) {
			rec.Dates = append(rec.Dates, dateRe.FindAllString(f.Answer, -1)...)
		}
		if topicMatches(topic, moneyKeywords) {
			rec.Money = append(rec.Money, extractMoney(f.Answer, f.Topic)...)
		}
		if topicMatches(topic, placeKeywords) {
			rec.Places = append(rec.Places, splitList(f.Answer)...)
		}
		if topicMatches(topic, errorKeywords) {
			rec.Errors = append(rec.Errors, splitList(f.Answer)...)
		}
	}

	rec.Counterparts = dedupe(rec.Counterparts)
	rec.Dates = dedupe(rec.Dates)
	rec.Places = dedupe(rec.Places)
	rec.Errors = dedupe(rec.Errors)
	return rec
}

// topicMatches reports whether the lowered topic contains any keyword.
func topicMatches(topic string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(topic, kw) {
			return true
		}
	}
	return false
}

// splitList breaks an answer body on list delimiters, trimming entries
// and dropping empties.
func splitList(answer string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(answer, listSeparators) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// extractMoney finds all (marker, amount) pairs in the answer and parses
// them into money entries. Non-finite results are discarded.
func extractMoney(answer, context string) []MoneyEntry {
	var out []MoneyEntry
	for _, m := range moneyRe.FindAllStringSubmatch(answer, -1) {
		amount, ok := parseAmount(m[2])
		if !ok {
			continue
		}
		out = append(out, MoneyEntry{
			Amount:   amount,
			Currency: resolveCurrency(m[0], m[1]),
			Context:  context,
		})
	}
	return out
}

// parseAmount normalises separators and parses the numeric string.
// A `.` or `,` followed by exactly three digits (up to the next separator
// or end) is a thousands separator and is stripped; a remaining separator
// is the decimal point.
func parseAmount(s string) (float64, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '.' && c != ',' {
			b.WriteByte(c)
			continue
		}
		if isThousandsSep(s, i) {
			continue
		}
		b.WriteByte('.')
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isThousandsSep reports whether the separator at index i is followed by
// exactly three digits before the end of the match or the next separator.
func isThousandsSep(s string, i int) bool {
	rest := s[i+1:]
	if len(rest) < 3 {
		return false
	}
	for j := 0; j < 3; j++ {
		if rest[j] < '0' || rest[j] > '9' {
			return false
		}
	}
	if len(rest) == 3 {
		return true
	}
	return rest[3] == '.' || rest[3] == ','
}

// resolveCurrency maps a matched money string to a currency code.
// Explicit codes win over the bare `$` marker, which defaults to USD.
func resolveCurrency(match, marker string) string {
	upper := strings.ToUpper(match)
	switch {
	case strings.Contains(upper, "MXN"):
		return "MXN"
	case strings.Contains(upper, "EUR"):
		return "EUR"
	case strings.Contains(upper, "USD"):
		return "USD"
	case marker == "$":
		return "USD"
	default:
		return strings.ToUpper(marker)
	}
}

// dedupe removes duplicates comparing trimmed values, keeping the
// first-seen entry and its original order.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		key := strings.TrimSpace(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
