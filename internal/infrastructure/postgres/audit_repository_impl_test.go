package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rentify/internal/domain/repository"
)

type fakeExec struct {
	sql  string
	args []any
	err  error
}

func (f *fakeExec) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	f.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), f.err
}

func TestAuditRecord(t *testing.T) {
	db := &fakeExec{}
	repo := NewAuditRepository(db)

	err := repo.Record(context.Background(), repository.AuditEvent{
		UserID: "64b7f0c2a1b2c3d4e5f60718",
		Action: "login_success",
		IP:     "10.0.0.1",
	})
	require.NoError(t, err)

	assert.Contains(t, db.sql, "INSERT INTO audit_logs")
	require.Len(t, db.args, 6)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", *db.args[0].(*string))
	assert.Nil(t, db.args[1].(*string), "empty email is stored as NULL")
	assert.Equal(t, "login_success", db.args[2])
	assert.JSONEq(t, `{}`, string(db.args[5].([]byte)))
}

func TestAuditRecordPropagatesError(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewAuditRepository(&fakeExec{err: boom})

	err := repo.Record(context.Background(), repository.AuditEvent{Action: "logout"})
	assert.ErrorIs(t, err, boom)
}
