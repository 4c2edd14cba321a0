package tier

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/swap-lib/common/types"
)

type fakeStore struct {
	name  types.TierName
	err   error
	calls int
}

func (s *fakeStore) TierName(_ context.Context, _ string) (types.TierName, error) {
	s.calls++
	return s.name, s.err
}

type fakeTable struct{}

func (fakeTable) TierConfig(name types.TierName) (*types.TierConfig, error) {
	switch name {
	case types.TierFree:
		return &types.TierConfig{Name: types.TierFree, TradeFeeBps: 30}, nil
	case types.TierPro:
		return &types.TierConfig{Name: types.TierPro, TradeFeeBps: 20}, nil
	case types.TierWhale:
		return &types.TierConfig{Name: types.TierWhale, TradeFeeBps: 10}, nil
	}
	return nil, errors.Errorf("tier %s not configured", name)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestResolverCachesWithinTTL(t *testing.T) {
	store := &fakeStore{name: types.TierPro}
	resolver := NewResolver(store, fakeTable{}, time.Minute, testLogger())

	first := resolver.Resolve(context.Background(), "user-1")
	second := resolver.Resolve(context.Background(), "user-1")

	require.Equal(t, types.TierPro, first.Name)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.calls)
}

func TestResolverExpiresAfterTTL(t *testing.T) {
	store := &fakeStore{name: types.TierPro}
	resolver := NewResolver(store, fakeTable{}, time.Minute, testLogger())

	current := time.Unix(1_700_000_000, 0)
	resolver.now = func() time.Time { return current }

	resolver.Resolve(context.Background(), "user-1")
	current = current.Add(2 * time.Minute)
	resolver.Resolve(context.Background(), "user-1")

	assert.Equal(t, 2, store.calls)
}

func TestResolverInvalidate(t *testing.T) {
	store := &fakeStore{name: types.TierWhale}
	resolver := NewResolver(store, fakeTable{}, time.Minute, testLogger())

	resolver.Resolve(context.Background(), "user-1")
	resolver.Invalidate("user-1")
	resolver.Resolve(context.Background(), "user-1")

	assert.Equal(t, 2, store.calls)
}

func TestResolverDegradesToFreeOnStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("subscription service down")}
	resolver := NewResolver(store, fakeTable{}, time.Minute, testLogger())

	config := resolver.Resolve(context.Background(), "user-1")

	require.NotNil(t, config)
	assert.Equal(t, types.TierFree, config.Name)
	assert.Equal(t, uint32(30), config.TradeFeeBps)
}

func TestResolverDegradesToFreeOnUnknownTier(t *testing.T) {
	store := &fakeStore{name: types.TierName("PLATINUM")}
	resolver := NewResolver(store, fakeTable{}, time.Minute, testLogger())

	config := resolver.Resolve(context.Background(), "user-1")

	require.NotNil(t, config)
	assert.Equal(t, types.TierFree, config.Name)
}

func TestResolverNilStoreDefaultsToFree(t *testing.T) {
	resolver := NewResolver(nil, fakeTable{}, 0, testLogger())

	config := resolver.Resolve(context.Background(), "user-1")

	require.NotNil(t, config)
	assert.Equal(t, types.TierFree, config.Name)
}
