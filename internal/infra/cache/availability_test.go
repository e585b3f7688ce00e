package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func TestAvailabilityKey(t *testing.T) {
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	key := AvailabilityKey(1, ptr.Ptr(int64(10)), 5, start, end)
	assert.Equal(t, "availability:1:10:5:2026-09-07:2026-09-13", key)

	// Режим "любой мастер"
	key = AvailabilityKey(1, nil, 5, start, end)
	assert.Equal(t, "availability:1:any:5:2026-09-07:2026-09-13", key)
}
