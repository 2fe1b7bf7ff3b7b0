package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbase/clubstaff/internal/domain/schedule"
)

func TestParseScheduleRows(t *testing.T) {
	rows, err := parseScheduleRows("Monday 10:00 11:30\nThursday 18:00 19:00")
	require.NoError(t, err)
	assert.Equal(t, []schedule.Row{
		{Day: "Monday", Start: "10:00", End: "11:30"},
		{Day: "Thursday", Start: "18:00", End: "19:00"},
	}, rows)
}

func TestParseScheduleRows_Errors(t *testing.T) {
	_, err := parseScheduleRows("Monday 10:00")
	assert.Error(t, err)

	_, err = parseScheduleRows("   ")
	assert.Error(t, err)
}
