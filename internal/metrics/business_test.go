package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("Success_CreateBusinessMetrics", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)
	})
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulOperation", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "applications", "application_submit", "success")
	})

	t.Run("Success_RecordFailedOperation", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "applications", "application_submit", "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "applications", "application_accept", "success")
		bm.RecordOperation(context.Background(), "users", "user_register", "success")
		bm.RecordOperation(context.Background(), "profiles", "profile_save", "error")
	})
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	t.Run("Success_RecordDuration", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "applications", "application_submit", 150*time.Millisecond, "success")
	})

	t.Run("Success_RecordZeroDuration", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "applications", "application_submit", 0, "success")
	})
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()

	t.Run("Success_RecordOperationIsNoOp", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "applications", "application_submit", "success")
	})

	t.Run("Success_RecordDurationIsNoOp", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "applications", "application_submit", time.Second, "success")
	})
}
