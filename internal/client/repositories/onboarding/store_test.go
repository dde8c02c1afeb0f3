package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP);`)
	require.NoError(t, err)
	return db
}

func TestStore_SetMerges(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(setupDB(t), 7*24*time.Hour, clock.Now, logging.Discard())
	ctx := context.Background()

	s.Set(ctx, models.OnboardingData{Email: "a@b.co"})
	s.Set(ctx, models.OnboardingData{IDDocumentID: "doc-1"})
	s.Set(ctx, models.OnboardingData{SelfieID: "selfie-1"})

	got := s.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "a@b.co", got.Email)
	assert.Equal(t, "doc-1", got.IDDocumentID)
	assert.Equal(t, "selfie-1", got.SelfieID)
	assert.Equal(t, clock.now, got.SavedAt)
}

func TestStore_SetKeepsExistingWhenFieldEmpty(t *testing.T) {
	s := NewStore(setupDB(t), 0, nil, logging.Discard())
	ctx := context.Background()

	s.Set(ctx, models.OnboardingData{IDDocumentID: "doc-1"})
	s.Set(ctx, models.OnboardingData{IDDocumentID: "", Email: "x@y.z"})

	got := s.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "doc-1", got.IDDocumentID)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(setupDB(t), time.Hour, nil, logging.Discard())
	ctx := context.Background()

	s.Set(ctx, models.OnboardingData{IDDocumentID: "doc-1"})
	s.Clear(ctx)
	assert.Nil(t, s.Get(ctx))

	// clearing an empty store is a no-op
	s.Clear(ctx)
	assert.Nil(t, s.Get(ctx))
}

func TestStore_ExpiredRecordIsDropped(t *testing.T) {
	db := setupDB(t)
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(db, 24*time.Hour, clock.Now, logging.Discard())
	ctx := context.Background()

	s.Set(ctx, models.OnboardingData{IDDocumentID: "doc-1"})

	clock.now = clock.now.Add(24 * time.Hour)
	require.NotNil(t, s.Get(ctx), "exactly at the TTL the record is still valid")

	clock.now = clock.now.Add(time.Second)
	assert.Nil(t, s.Get(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata WHERE key = ?`, Key).Scan(&n))
	assert.Zero(t, n)
}

func TestStore_SetOverExpiredStartsFresh(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(setupDB(t), time.Hour, clock.Now, logging.Discard())
	ctx := context.Background()

	s.Set(ctx, models.OnboardingData{IDDocumentID: "old-doc", Email: "old@x.io"})
	clock.now = clock.now.Add(2 * time.Hour)
	s.Set(ctx, models.OnboardingData{SelfieID: "selfie-1"})

	got := s.Get(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got.IDDocumentID)
	assert.Empty(t, got.Email)
	assert.Equal(t, "selfie-1", got.SelfieID)
}

func TestStore_CorruptRecordReadsAsAbsent(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db, time.Hour, nil, logging.Discard())

	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?)`, Key, []byte(`not json`))
	require.NoError(t, err)

	assert.Nil(t, s.Get(context.Background()))
}

func TestStore_SetRollsBackOnWriteFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT value FROM metadata`).WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec(`INSERT INTO metadata`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := NewStore(db, time.Hour, nil, logging.Discard())
	s.Set(context.Background(), models.OnboardingData{IDDocumentID: "doc-1"})

	require.NoError(t, mock.ExpectationsWereMet())
}
