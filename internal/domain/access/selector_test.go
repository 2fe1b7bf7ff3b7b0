package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/domain/access"
)

// Клуб 1: секция 10 (группы 100, 101), секция 11 (группа 110).
// Клуб 2: секция 20 (группа 200).
func testIndex() *access.Index {
	return access.NewIndex([]backend.Section{
		{ID: 10, ClubID: 1, Name: "Йога", Groups: []backend.Group{{ID: 100}, {ID: 101}}},
		{ID: 11, ClubID: 1, Name: "Бокс", Groups: []backend.Group{{ID: 110}}},
		{ID: 20, ClubID: 2, Name: "Плавание", Groups: []backend.Group{{ID: 200}}},
	})
}

func TestToggleClub_CascadesDown(t *testing.T) {
	s := access.NewSelector(testIndex())
	s.ToggleClub(1)

	assert.Equal(t, []int64{1}, s.SelectedClubs())
	assert.ElementsMatch(t, []int64{10, 11}, s.SelectedSections())
	assert.ElementsMatch(t, []int64{100, 101, 110}, s.SelectedGroups())
	assert.True(t, s.IsClubFullySelected(1))
	assert.True(t, s.IsSectionFullySelected(10))
	assert.True(t, s.IsGroupSelected(100, 10))
	// соседний клуб не затронут
	assert.False(t, s.IsClubFullySelected(2))
	assert.False(t, s.IsGroupSelected(200, 20))
}

func TestToggleClub_DeselectClearsDescendants(t *testing.T) {
	s := access.NewSelector(testIndex())
	s.ToggleClub(1)
	s.ToggleClub(1)

	assert.Empty(t, s.SelectedClubs())
	assert.Empty(t, s.SelectedSections())
	assert.Empty(t, s.SelectedGroups())
	assert.True(t, s.Empty())
}

func TestToggleSection_CascadesToGroups(t *testing.T) {
	s := access.NewSelector(testIndex())
	s.ToggleSection(10)

	assert.Empty(t, s.SelectedClubs())
	assert.Equal(t, []int64{10}, s.SelectedSections())
	assert.ElementsMatch(t, []int64{100, 101}, s.SelectedGroups())

	s.ToggleSection(10)
	assert.True(t, s.Empty())
}

func TestToggleSection_NoopWhenClubSelected(t *testing.T) {
	s := access.NewSelector(testIndex())
	s.ToggleClub(1)
	s.ToggleSection(10)

	// родитель покрывает всё — точечный toggle игнорируется
	assert.True(t, s.IsSectionFullySelected(10))
	assert.ElementsMatch(t, []int64{10, 11}, s.SelectedSections())
}

func TestToggleGroup(t *testing.T) {
	s := access.NewSelector(testIndex())
	s.ToggleGroup(100, 10)

	assert.Equal(t, []int64{100}, s.SelectedGroups())
	assert.True(t, s.IsGroupSelected(100, 10))
	assert.False(t, s.IsGroupSelected(101, 10))

	s.ToggleGroup(100, 10)
	assert.True(t, s.Empty())
}

func TestToggleGroup_NoopUnderSelectedAncestor(t *testing.T) {
	s := access.NewSelector(testIndex())
	s.ToggleSection(10)
	s.ToggleGroup(100, 10)
	assert.ElementsMatch(t, []int64{100, 101}, s.SelectedGroups())

	s2 := access.NewSelector(testIndex())
	s2.ToggleClub(1)
	s2.ToggleGroup(110, 11)
	assert.ElementsMatch(t, []int64{100, 101, 110}, s2.SelectedGroups())
}

func TestImplicitSelectionFromAncestor(t *testing.T) {
	// "полностью выбран" — вычисляемый факт: предок в множестве покрывает
	// потомка даже без его явной записи
	idx := access.NewIndex([]backend.Section{
		{ID: 10, ClubID: 1, Groups: []backend.Group{{ID: 100}}},
	})
	s := access.NewSelector(idx)
	s.ToggleSection(10)
	s.ToggleGroup(100, 10) // no-op: секция выбрана

	assert.True(t, s.IsGroupSelected(100, 10))
}

func TestValidate_AccessRequired(t *testing.T) {
	s := access.NewSelector(testIndex())
	require.ErrorIs(t, s.Validate(), access.ErrAccessRequired)

	s.ToggleGroup(100, 10)
	assert.NoError(t, s.Validate())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *access.Selector)
		want  access.PackageType
	}{
		{"club selected wins", func(s *access.Selector) { s.ToggleClub(1) }, access.PackageFullClub},
		{"single group", func(s *access.Selector) { s.ToggleGroup(100, 10) }, access.PackageSingleGroup},
		{"multiple groups", func(s *access.Selector) {
			s.ToggleGroup(100, 10)
			s.ToggleGroup(101, 10)
		}, access.PackageMultipleGroups},
		{"section cascade counts as groups", func(s *access.Selector) { s.ToggleSection(10) }, access.PackageMultipleGroups},
		{"empty selection", func(*access.Selector) {}, access.PackageMultipleGroups},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := access.NewSelector(testIndex())
			tt.setup(s)
			assert.Equal(t, tt.want, s.Classify())
		})
	}
}

func TestClassify_FullSectionWhenNoGroups(t *testing.T) {
	// секция без групп: каскад ничего не добавляет в groups
	idx := access.NewIndex([]backend.Section{{ID: 30, ClubID: 3}})
	s := access.NewSelector(idx)
	s.ToggleSection(30)
	assert.Equal(t, access.PackageFullSection, s.Classify())
}
