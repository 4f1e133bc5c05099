package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	"github.com/bryanwahyu/stratiq/internal/domain/wizard"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+s.Addr(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, s
}

func sampleSession() wizard.Session {
	sess := wizard.NewSession("sess-42", true, time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	sess.Step = wizard.StepReview
	sess.Mode = wizard.ModeMock
	sess.Record.Company = "Acme"
	sess.Record.Geo = analysis.GeoAPAC
	sess.Record.Results.SWOT.S = []string{"Brand"}
	sess.Record.Results.Industry.Industries = []analysis.IndustryRecord{{
		Name:           "Retail",
		TAM:            "120",
		SuccessFactors: map[string][]string{"Brand": {"trust"}},
	}}
	sess.Record.Recs = []analysis.Recommendation{{Title: "Pilot", Impact: 4, Effort: 2}}
	sess.Notify(wizard.NoticeSuccess, "Analysis generated.")
	return sess
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := setupTestRedis(t, time.Hour)
	ctx := context.Background()
	sess := sampleSession()

	require.NoError(t, store.Save(ctx, sess))
	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)

	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, wizard.StepReview, got.Step)
	assert.Equal(t, sess.Record.ID, got.Record.ID)
	assert.Equal(t, analysis.GeoAPAC, got.Record.Geo)
	assert.Equal(t, sess.Record.Results.SWOT, got.Record.Results.SWOT)
	assert.Equal(t, "trust", got.Record.Results.Industry.Industries[0].TopFactor("Brand"))
	assert.Equal(t, sess.Record.Recs, got.Record.Recs)
	assert.Equal(t, sess.Notices, got.Notices)
	assert.True(t, got.Offline)
	assert.True(t, sess.CreatedAt.Equal(got.CreatedAt))
}

func TestRedisStoreExpiry(t *testing.T) {
	store, s := setupTestRedis(t, time.Minute)
	ctx := context.Background()
	sess := sampleSession()
	require.NoError(t, store.Save(ctx, sess))

	s.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)
}

func TestRedisStoreUnknown(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)
	assert.Equal(t, DefaultTTL, store.ttl)
}

func TestRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore("://nope", time.Hour)
	assert.Error(t, err)
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	sess := sampleSession()
	require.NoError(t, store.Save(ctx, sess))

	// mutating the caller's copy must not leak into the store
	sess.Record.Results.SWOT.S[0] = "changed"

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brand"}, got.Record.Results.SWOT.S)

	got.Record.Recs[0].Title = "mutated"
	again, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pilot", again.Record.Recs[0].Title)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)
}
