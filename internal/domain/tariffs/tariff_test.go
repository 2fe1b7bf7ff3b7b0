package tariffs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/domain/access"
	"github.com/fitbase/clubstaff/internal/domain/schedule"
	"github.com/fitbase/clubstaff/internal/domain/tariffs"
)

func scope() *access.Selector {
	return access.NewSelector(access.NewIndex([]backend.Section{
		{ID: 10, ClubID: 1, Groups: []backend.Group{{ID: 100}, {ID: 101}}},
	}))
}

func validDraft() tariffs.Draft {
	s := scope()
	s.ToggleGroup(100, 10)
	return tariffs.Draft{
		Name:       "Утренний",
		Price:      15000,
		ValidFrom:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Rows:       []schedule.Row{{Day: "Monday", Start: "10:00", End: "11:00"}},
		Scope:      s,
	}
}

func TestDraftValidate_AccessRequired(t *testing.T) {
	d := validDraft()
	d.Scope = scope() // пустой выбор при валидных остальных полях
	assert.ErrorIs(t, d.Validate(), access.ErrAccessRequired)
}

func TestDraftValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *tariffs.Draft)
	}{
		{"empty name", func(d *tariffs.Draft) { d.Name = "" }},
		{"zero price", func(d *tariffs.Draft) { d.Price = 0 }},
		{"nil scope", func(d *tariffs.Draft) { d.Scope = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			assert.Error(t, d.Validate())
		})
	}
	d := validDraft()
	assert.NoError(t, d.Validate())
}

func TestBuildRequest(t *testing.T) {
	d := validDraft()
	req, err := d.BuildRequest()
	require.NoError(t, err)

	assert.Equal(t, "Утренний", req.Name)
	assert.Equal(t, string(access.PackageSingleGroup), req.PackageType)
	assert.Empty(t, req.ClubIDs)
	assert.Empty(t, req.SectionIDs)
	assert.Equal(t, []int64{100}, req.GroupIDs)
	assert.Equal(t, "2026-09-01", req.ValidFrom)
	assert.Equal(t, "2026-12-01", req.ValidUntil)
	require.Len(t, req.Schedule["monday"], 1)
	assert.Equal(t, backend.Slot{Time: "10:00", Duration: 60}, req.Schedule["monday"][0])
}

func TestBuildRequest_ClassifiesAtSubmitTime(t *testing.T) {
	d := validDraft()
	req, err := d.BuildRequest()
	require.NoError(t, err)
	assert.Equal(t, string(access.PackageSingleGroup), req.PackageType)

	// выбор изменился после первой сборки — тип пересчитывается заново
	d.Scope.ToggleGroup(101, 10)
	req, err = d.BuildRequest()
	require.NoError(t, err)
	assert.Equal(t, string(access.PackageMultipleGroups), req.PackageType)
}

func TestBuildRequest_StrictSchedule(t *testing.T) {
	d := validDraft()
	d.Rows = []schedule.Row{{Day: "Monday", Start: "10:00", End: "09:00"}}
	_, err := d.BuildRequest()
	assert.Error(t, err, "tariff path uses the strict builder, no silent clamp")
}
