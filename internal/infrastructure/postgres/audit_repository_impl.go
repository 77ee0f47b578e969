package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/rentify/internal/domain/repository"
)

// execer is the part of *pgxpool.Pool the audit log needs.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type AuditRepository struct {
	db execer
}

func NewAuditRepository(db execer) *AuditRepository {
	return &AuditRepository{db: db}
}

const insertAuditLog = `
INSERT INTO audit_logs (user_id, email, action, ip, user_agent, metadata)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *AuditRepository) Record(ctx context.Context, e repository.AuditEvent) error {
	md := e.Metadata
	if md == nil {
		md = map[string]any{}
	}
	b, err := json.Marshal(md)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, insertAuditLog,
		nullable(e.UserID), nullable(e.Email), e.Action, nullable(e.IP), nullable(e.UserAgent), b)
	return err
}

// nullable stores empty strings as NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.AuditLog = (*AuditRepository)(nil)
