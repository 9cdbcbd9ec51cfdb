// Package sqlite provides SQLite-backed workspace persistence so documents,
// transcripts and the display order survive process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lexdesk-labs/lexdesk-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.WorkspaceStore = (*Store)(nil)

// selectedKey is the workspace_state row holding the selection cursor.
const selectedKey = "selected_id"

// Store is a SQLite-backed implementation of driven.WorkspaceStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lexdesk/data/workspace.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lexdesk", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workspace.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveDocument stores or updates a document.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.Document) error {
	overviewJSON, err := json.Marshal(doc.Overview)
	if err != nil {
		return fmt.Errorf("marshalling overview: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, path, size_bytes, page_count, chunk_count, content_ref, overview, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			size_bytes = excluded.size_bytes,
			page_count = excluded.page_count,
			chunk_count = excluded.chunk_count,
			content_ref = excluded.content_ref,
			overview = excluded.overview
	`, doc.ID, doc.Name, doc.Path, doc.SizeBytes, doc.PageCount, doc.ChunkCount,
		doc.ContentRef, string(overviewJSON), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// DeleteDocument removes a document; its messages cascade.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// SaveOrder persists the display order as per-document positions.
func (s *Store) SaveOrder(ctx context.Context, order []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for pos, id := range order {
		if _, err := tx.ExecContext(ctx, "UPDATE documents SET position = ? WHERE id = ?", pos, id); err != nil {
			return fmt.Errorf("saving position for %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// SaveSelection persists the selection cursor. Empty clears it.
func (s *Store) SaveSelection(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workspace_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, selectedKey, id)
	if err != nil {
		return fmt.Errorf("saving selection: %w", err)
	}
	return nil
}

// AppendMessage adds one transcript entry for a document.
func (s *Store) AppendMessage(ctx context.Context, documentID string, msg domain.ChatMessage) error {
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (document_id, role, content, created_at)
		VALUES (?, ?, ?, ?)
	`, documentID, msg.Role, msg.Content, createdAt)
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	return nil
}

// Load reads the full persisted state.
func (s *Store) Load(ctx context.Context) (*driven.WorkspaceSnapshot, error) {
	snapshot := &driven.WorkspaceSnapshot{
		Documents: make(map[string]domain.Document),
		Messages:  make(map[string][]domain.ChatMessage),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, path, size_bytes, page_count, chunk_count, content_ref, overview, created_at
		FROM documents ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc domain.Document
		var overviewJSON string
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Path, &doc.SizeBytes, &doc.PageCount,
			&doc.ChunkCount, &doc.ContentRef, &overviewJSON, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if err := json.Unmarshal([]byte(overviewJSON), &doc.Overview); err != nil {
			return nil, fmt.Errorf("unmarshalling overview for %s: %w", doc.ID, err)
		}
		snapshot.Documents[doc.ID] = doc
		snapshot.Order = append(snapshot.Order, doc.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	if err := s.loadMessages(ctx, snapshot); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT value FROM workspace_state WHERE key = ?", selectedKey)
	var selected string
	if err := row.Scan(&selected); err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("loading selection: %w", err)
	}
	// A stale cursor pointing at a deleted document is dropped here.
	if _, ok := snapshot.Documents[selected]; ok {
		snapshot.SelectedID = selected
	}

	return snapshot, nil
}

// loadMessages fills the per-document transcripts.
func (s *Store) loadMessages(ctx context.Context, snapshot *driven.WorkspaceSnapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, role, content, created_at
		FROM messages ORDER BY document_id, id
	`)
	if err != nil {
		return fmt.Errorf("loading messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var documentID string
		var msg domain.ChatMessage
		if err := rows.Scan(&documentID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return fmt.Errorf("scanning message: %w", err)
		}
		snapshot.Messages[documentID] = append(snapshot.Messages[documentID], msg)
	}
	return rows.Err()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
