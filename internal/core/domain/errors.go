package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoSelection indicates an operation needs a selected document
	// but nothing is selected.
	ErrNoSelection = errors.New("no document selected")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIngestionFailed indicates the analysis service rejected or failed
	// to process a file. Isolated per file, never aborts a batch.
	ErrIngestionFailed = errors.New("ingestion failed")

	// ErrAskFailed indicates a question to the analysis service failed.
	// Surfaced in the transcript, never corrupts workspace state.
	ErrAskFailed = errors.New("ask failed")

	// ErrNotPDF indicates a candidate file does not carry a .pdf name.
	ErrNotPDF = errors.New("not a PDF file")
)
