package repository

import (
	"context"
	"io"
	"time"
)

// StoredFile describes an uploaded file after it was written to storage.
type StoredFile struct {
	Name string // storage key, e.g. "1700000000000-avatar.png"
	Path string // reference kept in documents: URL or "/uploads/<name>"
}

// FileStore persists uploaded images.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (StoredFile, error)
	Delete(ctx context.Context, name string) error
}

// RevocationList remembers revoked session token ids until they expire.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuditEvent is one security-relevant action (register, login, logout).
type AuditEvent struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}

type AuditLog interface {
	Record(ctx context.Context, e AuditEvent) error
}

// Notifier enqueues outbound email jobs.
type Notifier interface {
	Notify(ctx context.Context, to, template string, data map[string]any) error
}
