package schedule

import (
	"testing"
	"time"

	"wrenchworks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(day time.Weekday, start, end int) models.ScheduleBlock {
	return models.ScheduleBlock{MechanicID: "mech-1", Day: day, Start: start, End: end}
}

func TestValidateBlocks(t *testing.T) {
	t.Run("empty set is valid", func(t *testing.T) {
		assert.NoError(t, ValidateBlocks(nil))
	})

	t.Run("disjoint blocks across days are valid", func(t *testing.T) {
		blocks := []models.ScheduleBlock{
			block(time.Monday, 9*60, 12*60),
			block(time.Monday, 13*60, 17*60),
			block(time.Tuesday, 8*60, 16*60),
			block(time.Saturday, 10*60, 14*60),
		}
		assert.NoError(t, ValidateBlocks(blocks))
	})

	t.Run("back-to-back blocks are not overlapping", func(t *testing.T) {
		blocks := []models.ScheduleBlock{
			block(time.Monday, 9*60, 12*60),
			block(time.Monday, 12*60, 17*60),
		}
		assert.NoError(t, ValidateBlocks(blocks))
	})

	t.Run("inverted interval fails", func(t *testing.T) {
		blocks := []models.ScheduleBlock{block(time.Wednesday, 14*60, 14*60)}
		err := ValidateBlocks(blocks)
		require.Error(t, err)

		var inverted *InvertedIntervalError
		require.ErrorAs(t, err, &inverted)
		assert.Equal(t, time.Wednesday, inverted.Day)
		assert.Equal(t, 14*60, inverted.Block.Start)
	})

	t.Run("end before start fails", func(t *testing.T) {
		err := ValidateBlocks([]models.ScheduleBlock{block(time.Friday, 17*60, 9*60)})
		var inverted *InvertedIntervalError
		require.ErrorAs(t, err, &inverted)
		assert.Equal(t, time.Friday, inverted.Day)
	})

	t.Run("overlapping same-day blocks fail", func(t *testing.T) {
		// Mon 09:00-12:00 and Mon 11:00-14:00.
		blocks := []models.ScheduleBlock{
			block(time.Monday, 9*60, 12*60),
			block(time.Monday, 11*60, 14*60),
		}
		err := ValidateBlocks(blocks)
		require.Error(t, err)

		var overlap *OverlapError
		require.ErrorAs(t, err, &overlap)
		assert.Equal(t, time.Monday, overlap.Day)
	})

	t.Run("overlap detected regardless of input order", func(t *testing.T) {
		blocks := []models.ScheduleBlock{
			block(time.Thursday, 11*60, 14*60),
			block(time.Thursday, 9*60, 12*60),
		}
		var overlap *OverlapError
		require.ErrorAs(t, ValidateBlocks(blocks), &overlap)
		assert.Equal(t, time.Thursday, overlap.Day)
	})

	t.Run("same blocks on different days do not conflict", func(t *testing.T) {
		blocks := []models.ScheduleBlock{
			block(time.Monday, 9*60, 12*60),
			block(time.Tuesday, 9*60, 12*60),
		}
		assert.NoError(t, ValidateBlocks(blocks))
	})

	t.Run("contained block fails", func(t *testing.T) {
		blocks := []models.ScheduleBlock{
			block(time.Monday, 8*60, 18*60),
			block(time.Monday, 10*60, 11*60),
		}
		var overlap *OverlapError
		require.ErrorAs(t, ValidateBlocks(blocks), &overlap)
	})
}

func TestCoversTime(t *testing.T) {
	b := block(time.Monday, 9*60, 12*60)

	assert.True(t, CoversTime(b, time.Monday, 9*60), "start is inclusive")
	assert.True(t, CoversTime(b, time.Monday, 11*60+59))
	assert.False(t, CoversTime(b, time.Monday, 12*60), "end is exclusive")
	assert.False(t, CoversTime(b, time.Monday, 8*60+59))
	assert.False(t, CoversTime(b, time.Tuesday, 10*60))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "09:00", FormatMinutes(540))
	assert.Equal(t, "13:30", FormatMinutes(810))
	assert.Equal(t, "00:00", FormatMinutes(0))
}
