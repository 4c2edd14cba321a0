package endpointpool

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRaceSlowSuccessBeatsFastError(t *testing.T) {
	set := NewSet("test", []string{"fast-error", "slow-success"}, testLogger())

	value, err := Race(context.Background(), set, func(_ context.Context, endpoint *Endpoint) (string, error) {
		if endpoint.URL == "fast-error" {
			return "", errors.New("connection refused")
		}
		time.Sleep(50 * time.Millisecond)
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", value)
}

func TestRaceAllFail(t *testing.T) {
	set := NewSet("test", []string{"a", "b", "c"}, testLogger())

	_, err := Race(context.Background(), set, func(_ context.Context, _ *Endpoint) (int, error) {
		return 0, errors.New("connection refused")
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrProviderUnavailable))
}

func TestRacePermanentAnswerStopsRace(t *testing.T) {
	set := NewSet("test", []string{"a", "b"}, testLogger())

	_, err := Race(context.Background(), set, func(_ context.Context, _ *Endpoint) (int, error) {
		return 0, Permanent(commonerrors.ErrNoPoolFound)
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrNoPoolFound))
	assert.False(t, errors.Is(err, commonerrors.ErrProviderUnavailable))

	// A definitive answer must not count against endpoint health.
	assert.Len(t, set.Healthy(), 2)
}

func TestSequentialTriesInOrder(t *testing.T) {
	set := NewSet("test", []string{"first", "second"}, testLogger())

	var tried []string
	value, err := Sequential(context.Background(), set, func(_ context.Context, endpoint *Endpoint) (string, error) {
		tried = append(tried, endpoint.URL)
		if endpoint.URL == "first" {
			return "", errors.New("connection refused")
		}
		return endpoint.URL, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "second", value)
	assert.Equal(t, []string{"first", "second"}, tried)
}

func TestSequentialPermanentAnswer(t *testing.T) {
	set := NewSet("test", []string{"a", "b"}, testLogger())

	var calls int
	_, err := Sequential(context.Background(), set, func(_ context.Context, _ *Endpoint) (int, error) {
		calls++
		return 0, Permanent(commonerrors.ErrQuoteFailed)
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrQuoteFailed))
	assert.Equal(t, 1, calls)
}

func TestEndpointCoolDownExclusion(t *testing.T) {
	set := NewSet("test", []string{"flaky", "stable"}, testLogger())
	flaky := set.Healthy()[0]

	for i := 0; i < defaultFailureThreshold; i++ {
		set.ReportFailure(flaky, errors.New("timeout"))
	}

	healthy := set.Healthy()
	require.Len(t, healthy, 1)
	assert.Equal(t, "stable", healthy[0].URL)

	primary, err := set.Primary()
	require.NoError(t, err)
	assert.Equal(t, "stable", primary.URL)
}

func TestPrimaryFailsWhenAllExcluded(t *testing.T) {
	set := NewSet("test", []string{"only"}, testLogger())
	endpoint := set.Healthy()[0]

	for i := 0; i < defaultFailureThreshold; i++ {
		set.ReportFailure(endpoint, errors.New("timeout"))
	}

	_, err := set.Primary()
	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrProviderUnavailable))
}

func TestMarkSuccessResetsHealth(t *testing.T) {
	endpoint := &Endpoint{URL: "a"}

	endpoint.MarkFailure(3, time.Minute)
	endpoint.MarkFailure(3, time.Minute)
	endpoint.MarkSuccess()
	endpoint.MarkFailure(3, time.Minute)
	endpoint.MarkFailure(3, time.Minute)

	assert.True(t, endpoint.Available())
}

func TestDispatchHonoursContext(t *testing.T) {
	set := NewSet("test", []string{"a"}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Dispatch(ctx, set, false, func(ctx context.Context, _ *Endpoint) (int, error) {
		return 0, ctx.Err()
	})
	assert.Error(t, err)
}
