package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrependCapped(t *testing.T) {
	t.Run("prepends newest first", func(t *testing.T) {
		log := PrependCapped(nil, CaptureEvent{ID: "first"})
		log = PrependCapped(log, CaptureEvent{ID: "second"})

		require.Len(t, log, 2)
		assert.Equal(t, "second", log[0].ID)
		assert.Equal(t, "first", log[1].ID)
	})

	t.Run("drops oldest beyond the cap", func(t *testing.T) {
		var log []CaptureEvent
		for i := 0; i < MaxCaptureLog+1; i++ {
			log = PrependCapped(log, CaptureEvent{
				ID:        fmt.Sprintf("ev-%d", i),
				CreatedAt: time.Unix(int64(i), 0),
			})
		}

		require.Len(t, log, MaxCaptureLog)
		// The most recent entry survives, the very first one is gone.
		assert.Equal(t, fmt.Sprintf("ev-%d", MaxCaptureLog), log[0].ID)
		assert.Equal(t, "ev-1", log[len(log)-1].ID)
	})
}
