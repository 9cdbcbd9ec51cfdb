// Package analysis provides the HTTP adapter for the external analysis
// service, covering per-file ingestion and document QA.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driven"
	"github.com/lexdesk-labs/lexdesk-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Analyzer = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:8000"
	DefaultTimeout    = 120 * time.Second
	DefaultIngestRate = 2.0 // uploads per second
)

// Config holds configuration for the analysis client.
type Config struct {
	// BaseURL is the analysis service base URL (default: http://localhost:8000).
	BaseURL string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration

	// IngestRate throttles uploads per second (default: 2).
	IngestRate float64
}

// Client talks to the analysis service over HTTP.
// Uploads are throttled client-side so a large folder drop does not
// flood the service.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// ingestResponse is the /api/ingest response format.
type ingestResponse struct {
	OK       bool          `json:"ok"`
	Status   string        `json:"status"`
	DocID    string        `json:"doc_id"`
	Chunks   int           `json:"chunks"`
	Overview []wireFinding `json:"overview"`
}

// wireFinding is the overview entry wire format.
type wireFinding struct {
	Topic     string         `json:"topic"`
	Answer    string         `json:"answer"`
	Citations []wireCitation `json:"citations,omitempty"`
}

// wireCitation is the citation wire format.
type wireCitation struct {
	PageStart int    `json:"page_start"`
	PageEnd   int    `json:"page_end"`
	Snippet   string `json:"snippet,omitempty"`
}

// askRequest is the /api/ask request format.
type askRequest struct {
	DocID string `json:"doc_id"`
	Query string `json:"query"`
	K     int    `json:"k"`
}

// askResponse is the /api/ask response format.
type askResponse struct {
	Answer string `json:"answer"`
}

// errorResponse is the service's error detail format.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewClient creates a new analysis service client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.IngestRate <= 0 {
		cfg.IngestRate = DefaultIngestRate
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.IngestRate), 1),
	}
}

// IngestFile uploads one file for indexing and returns its identity and
// overview. A non-2xx response is an ingestion failure for that file.
func (c *Client) IngestFile(ctx context.Context, file domain.RawFile) (*driven.IngestResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("building upload: %w", err)
	}
	if _, err := part.Write(file.Bytes); err != nil {
		return nil, fmt.Errorf("building upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("building upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ingest", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	logger.Debug("Uploading %s (%d bytes)", file.Name, len(file.Bytes))
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ingest request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", domain.ErrIngestionFailed, readDetail(resp))
	}

	var out ingestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding ingest response: %w", err)
	}
	if !out.OK || out.DocID == "" {
		return nil, fmt.Errorf("%w: service returned no document id", domain.ErrIngestionFailed)
	}

	return &driven.IngestResult{
		DocumentID: out.DocID,
		ChunkCount: out.Chunks,
		Overview:   toDomainFindings(out.Overview),
	}, nil
}

// Ask runs a question against an ingested document.
func (c *Client) Ask(ctx context.Context, documentID, query string, limit int) (string, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 25 {
		limit = 25
	}

	payload, err := json.Marshal(askRequest{DocID: documentID, Query: query, K: limit})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ask", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ask request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", domain.ErrAskFailed, readDetail(resp))
	}

	var out askResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding ask response: %w", err)
	}
	return out.Answer, nil
}

// toDomainFindings converts wire findings to domain entities, dropping
// citations with inverted page ranges.
func toDomainFindings(wire []wireFinding) []domain.TopicFinding {
	if len(wire) == 0 {
		return nil
	}

	findings := make([]domain.TopicFinding, 0, len(wire))
	for _, wf := range wire {
		finding := domain.TopicFinding{Topic: wf.Topic, Answer: wf.Answer}
		for _, wc := range wf.Citations {
			citation := domain.Citation{
				PageStart: wc.PageStart,
				PageEnd:   wc.PageEnd,
				Snippet:   wc.Snippet,
			}
			if citation.Valid() {
				finding.Citations = append(finding.Citations, citation)
			}
		}
		findings = append(findings, finding)
	}
	return findings
}

// readDetail extracts the error detail from a failed response, falling
// back to the HTTP status.
func readDetail(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		var detail errorResponse
		if json.Unmarshal(body, &detail) == nil && detail.Detail != "" {
			return detail.Detail
		}
	}
	return resp.Status
}
