package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Received, order.Preparing, order.ReadyForDelivery,
			order.OutForDelivery, order.Delivered, order.Cancelled,
		} {
			require.NoError(t, s.Validate(), "status %s", s)
		}
	})

	t.Run("unknown and out-of-range fail", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ReadyForDelivery", order.ReadyForDelivery.String())
	assert.Equal(t, "OutForDelivery", order.OutForDelivery.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_StartDelivery(t *testing.T) {
	t.Run("ready-for-delivery transitions", func(t *testing.T) {
		next, err := order.ReadyForDelivery.StartDelivery()

		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, next)
	})

	t.Run("other statuses conflict", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Received, order.Preparing, order.OutForDelivery, order.Delivered, order.Cancelled,
		} {
			_, err := s.StartDelivery()
			require.ErrorIs(t, err, errs.ErrStateConflict, "status %s", s)
		}
	})
}

func TestStatus_ReturnToReady(t *testing.T) {
	t.Run("out-for-delivery transitions back", func(t *testing.T) {
		next, err := order.OutForDelivery.ReturnToReady()

		require.NoError(t, err)
		assert.Equal(t, order.ReadyForDelivery, next)
	})

	t.Run("other statuses conflict", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Received, order.Preparing, order.ReadyForDelivery, order.Delivered, order.Cancelled,
		} {
			_, err := s.ReturnToReady()
			require.ErrorIs(t, err, errs.ErrStateConflict, "status %s", s)
		}
	})
}
