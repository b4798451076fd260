package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyLevels(t *testing.T) {
	t.Run("WithStaff", func(t *testing.T) {
		staffID := int64(7)
		levels := hierarchyLevels(&staffID, time.Saturday)

		require.Len(t, levels, 4)
		assert.Equal(t, "staff+weekday", levels[0].name)
		assert.Equal(t, &staffID, levels[0].staffID)
		assert.Equal(t, time.Saturday, *levels[0].weekday)
		assert.Nil(t, levels[1].weekday)
		assert.Nil(t, levels[2].staffID)
		assert.Equal(t, time.Saturday, *levels[2].weekday)
		assert.Nil(t, levels[3].staffID)
		assert.Nil(t, levels[3].weekday)
	})

	t.Run("WithoutStaff", func(t *testing.T) {
		levels := hierarchyLevels(nil, time.Monday)

		require.Len(t, levels, 2)
		assert.Equal(t, "weekday", levels[0].name)
		assert.Equal(t, "global", levels[1].name)
	})
}

func TestWeekdayValue(t *testing.T) {
	assert.Nil(t, weekdayValue(nil))
	sunday := time.Sunday
	assert.Equal(t, 0, weekdayValue(&sunday))
}
