package dto

import (
	"testing"
	"time"

	"cutclub-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryQueryWindow(t *testing.T) {
	t.Run("empty is unbounded", func(t *testing.T) {
		from, to, err := HistoryQuery{}.Window()
		require.NoError(t, err)
		assert.True(t, from.IsZero())
		assert.True(t, to.IsZero())
	})

	t.Run("plain dates cover the whole last day", func(t *testing.T) {
		from, to, err := HistoryQuery{From: "2025-03-01", To: "2025-03-31"}.Window()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("timestamps are taken as given", func(t *testing.T) {
		_, to, err := HistoryQuery{To: "2025-03-31T15:04:05Z"}.Window()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 31, 15, 4, 5, 0, time.UTC), to)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, _, err := HistoryQuery{From: "last week"}.Window()
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})

	t.Run("rejects reversed range", func(t *testing.T) {
		_, _, err := HistoryQuery{From: "2025-03-10", To: "2025-03-01"}.Window()
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})
}
