package domain

// TopicFinding is one free-text analysis result attached to a document.
// Topics are language-mixed ("Fecha de firma", "Counterparties") and the
// answer body may carry list delimiters.
type TopicFinding struct {
	// Topic is the free-text label for the finding.
	Topic string

	// Answer is the free-text body.
	Answer string

	// Citations are the page ranges backing the answer, in order.
	Citations []Citation
}

// Citation points at a page range in the source document.
type Citation struct {
	// PageStart is the first page of the range, 1-based.
	PageStart int

	// PageEnd is the last page of the range, always >= PageStart.
	PageEnd int

	// Snippet is an optional excerpt from the cited range.
	Snippet string
}

// Valid reports whether the citation's page range is well-formed.
func (c Citation) Valid() bool {
	return c.PageStart >= 1 && c.PageEnd >= c.PageStart
}
