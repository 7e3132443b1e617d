package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "statements.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord() models.StatementRecord {
	fields := models.Unavailable()
	fields[models.FieldTotalBalanceDue] = "₹10,650.00"
	fields[models.FieldCardLast4] = "1234"
	return models.StatementRecord{
		Source: "march.pdf",
		Issuer: "CFPB Sample (Working)",
		Parser: "Generic",
		Fields: fields,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, sampleRecord())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.CreatedAt)

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.Equal(t, "₹10,650.00", got.Fields[models.FieldTotalBalanceDue])
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestList_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return ts }
		rec, err := s.Save(ctx, sampleRecord())
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestList_Empty(t *testing.T) {
	s := openTestStore(t)

	all, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestAttachSummary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := s.Save(ctx, sampleRecord())
	require.NoError(t, err)

	require.NoError(t, s.AttachSummary(ctx, rec.ID, "Pay the full balance."))
	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pay the full balance.", got.Summary)

	err = s.AttachSummary(ctx, "missing", "x")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statements.db")

	s, err := Open(path)
	require.NoError(t, err)
	rec, err := s.Save(context.Background(), sampleRecord())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get(context.Background(), rec.ID)
	assert.NoError(t, err)
}
