package nats

import (
	"testing"

	"cutclub-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	t.Run("enveloped", func(t *testing.T) {
		raw := []byte(`{"type":"PAYMENT_CONFIRMED","occurred_at":"2026-03-01T10:00:00Z","data":{"external_id":"pix-1"}}`)
		evt, err := decodeEvent("events.PAYMENT_CONFIRMED", raw)
		require.NoError(t, err)
		assert.Equal(t, events.TypePaymentConfirmed, evt.EventType())
		assert.Equal(t, "pix-1", evt.Payload()["external_id"])
		assert.Equal(t, 2026, evt.Timestamp().Year())
	})

	t.Run("bare payload takes type from subject", func(t *testing.T) {
		raw := []byte(`{"external_id":"pix-2","amount":"79.99"}`)
		evt, err := decodeEvent("events.PAYMENT_CONFIRMED", raw)
		require.NoError(t, err)
		assert.Equal(t, events.TypePaymentConfirmed, evt.EventType())
		assert.Equal(t, "79.99", evt.Payload()["amount"])
		assert.False(t, evt.Timestamp().IsZero())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := decodeEvent("events.PAYMENT_CONFIRMED", []byte(`not json`))
		assert.Error(t, err)
	})
}
