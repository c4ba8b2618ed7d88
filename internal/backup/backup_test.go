package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drapebook/drapebook/internal/booking"
	"github.com/drapebook/drapebook/internal/store"
)

func newTestRepo(t *testing.T) *store.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedisStore(client, "test", nil)
}

func seed(t *testing.T, repo booking.Repository) {
	t.Helper()
	err := repo.WithTx(context.Background(), func(ctx context.Context, tx booking.TxRepository) error {
		if err := tx.SaveOrders(ctx, []booking.Order{{ID: "o1", CustomerName: "Asha"}}); err != nil {
			return err
		}
		return tx.SaveEnquiries(ctx, []booking.Enquiry{{ID: "e1"}})
	})
	require.NoError(t, err)
}

func TestExportRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	exportedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := newTestRepo(t)
	seed(t, src)

	doc, err := NewService(src, nil, nil, func() time.Time { return exportedAt }).Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, exportedAt, doc.ExportedAt)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(doc))

	dst := newTestRepo(t)
	restored, err := NewService(dst, nil, nil, nil).Restore(ctx, &buf)
	require.NoError(t, err)
	assert.Len(t, restored.Orders, 1)

	orders, err := dst.LoadOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Asha", orders[0].CustomerName)
}

func TestRestoreRejectsMalformedDocument(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seed(t, repo)
	svc := NewService(repo, nil, nil, nil)

	for _, body := range []string{"", "{", `{"orders": "nope"}`, "[1,2]"} {
		_, err := svc.Restore(ctx, strings.NewReader(body))
		require.ErrorIs(t, err, ErrInvalidBackup, body)
	}

	orders, err := repo.LoadOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1, "existing data untouched")
}

type bumpCounter struct{ n int }

func (b *bumpCounter) Bump(context.Context) error { b.n++; return nil }

func TestRestoreMissingSettingsUsesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	bumps := &bumpCounter{}

	doc, err := NewService(repo, bumps, nil, nil).Restore(ctx, strings.NewReader(`{"orders": []}`))
	require.NoError(t, err)
	assert.Equal(t, booking.DefaultSettings(), doc.Settings)
	assert.NotNil(t, doc.Enquiries)
	assert.Equal(t, 1, bumps.n)
}
