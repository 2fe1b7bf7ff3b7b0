package access

import (
	"errors"
	"sort"

	"github.com/fitbase/clubstaff/internal/backend"
)

var ErrAccessRequired = errors.New("access scope required: nothing selected")

// PackageType — тип тарифного пакета, выводится из итогового выбора.
type PackageType string

const (
	PackageFullClub       PackageType = "full_club"
	PackageFullSection    PackageType = "full_section"
	PackageSingleGroup    PackageType = "single_group"
	PackageMultipleGroups PackageType = "multiple_groups"
)

// Index — read-only вложенность клуб ⊇ секция ⊇ группа.
type Index struct {
	sectionsByClub  map[int64][]int64
	groupsBySection map[int64][]int64
	clubBySection   map[int64]int64
}

func NewIndex(sections []backend.Section) *Index {
	idx := &Index{
		sectionsByClub:  make(map[int64][]int64),
		groupsBySection: make(map[int64][]int64),
		clubBySection:   make(map[int64]int64),
	}
	for _, s := range sections {
		idx.sectionsByClub[s.ClubID] = append(idx.sectionsByClub[s.ClubID], s.ID)
		idx.clubBySection[s.ID] = s.ClubID
		for _, g := range s.Groups {
			idx.groupsBySection[s.ID] = append(idx.groupsBySection[s.ID], g.ID)
		}
	}
	return idx
}

// Selector — каскадный выбор по трём явным множествам id. Никакого скрытого
// состояния: "полностью выбран" всегда вычисляется от предков, не хранится.
type Selector struct {
	idx      *Index
	clubs    map[int64]struct{}
	sections map[int64]struct{}
	groups   map[int64]struct{}
}

func NewSelector(idx *Index) *Selector {
	return &Selector{
		idx:      idx,
		clubs:    make(map[int64]struct{}),
		sections: make(map[int64]struct{}),
		groups:   make(map[int64]struct{}),
	}
}

// ToggleClub включает/выключает клуб целиком. При включении все секции и
// группы под ним записываются явно — так последующие точечные переключения
// потомков после массового выбора остаются простыми. При выключении каскадно
// снимаются.
func (s *Selector) ToggleClub(id int64) {
	if _, ok := s.clubs[id]; ok {
		delete(s.clubs, id)
		for _, secID := range s.idx.sectionsByClub[id] {
			delete(s.sections, secID)
			for _, gID := range s.idx.groupsBySection[secID] {
				delete(s.groups, gID)
			}
		}
		return
	}
	s.clubs[id] = struct{}{}
	for _, secID := range s.idx.sectionsByClub[id] {
		s.sections[secID] = struct{}{}
		for _, gID := range s.idx.groupsBySection[secID] {
			s.groups[gID] = struct{}{}
		}
	}
}

// ToggleSection имеет смысл только когда родительский клуб не выбран
// (UI в этом случае блокирует контрол; здесь — защитный no-op).
func (s *Selector) ToggleSection(id int64) {
	if _, ok := s.clubs[s.idx.clubBySection[id]]; ok {
		return
	}
	if _, ok := s.sections[id]; ok {
		delete(s.sections, id)
		for _, gID := range s.idx.groupsBySection[id] {
			delete(s.groups, gID)
		}
		return
	}
	s.sections[id] = struct{}{}
	for _, gID := range s.idx.groupsBySection[id] {
		s.groups[gID] = struct{}{}
	}
}

// ToggleGroup имеет смысл, только когда не выбраны ни секция, ни её клуб.
func (s *Selector) ToggleGroup(id int64, parentSectionID int64) {
	if _, ok := s.sections[parentSectionID]; ok {
		return
	}
	if _, ok := s.clubs[s.idx.clubBySection[parentSectionID]]; ok {
		return
	}
	if _, ok := s.groups[id]; ok {
		delete(s.groups, id)
		return
	}
	s.groups[id] = struct{}{}
}

func (s *Selector) IsClubFullySelected(id int64) bool {
	_, ok := s.clubs[id]
	return ok
}

// IsSectionFullySelected: свой id в множестве ИЛИ выбран клуб-предок.
func (s *Selector) IsSectionFullySelected(id int64) bool {
	if _, ok := s.sections[id]; ok {
		return true
	}
	_, ok := s.clubs[s.idx.clubBySection[id]]
	return ok
}

func (s *Selector) IsGroupSelected(id int64, parentSectionID int64) bool {
	if _, ok := s.groups[id]; ok {
		return true
	}
	return s.IsSectionFullySelected(parentSectionID)
}

func (s *Selector) Empty() bool {
	return len(s.clubs) == 0 && len(s.sections) == 0 && len(s.groups) == 0
}

// Validate: пустой выбор по всем трём уровням тарифом быть не может.
func (s *Selector) Validate() error {
	if s.Empty() {
		return ErrAccessRequired
	}
	return nil
}

// Classify выводит тип пакета из того, какие множества непусты, в порядке
// приоритета. Считается в момент сабмита, не кэшируется.
func (s *Selector) Classify() PackageType {
	switch {
	case len(s.clubs) > 0:
		return PackageFullClub
	case len(s.sections) > 0 && len(s.groups) == 0:
		return PackageFullSection
	case len(s.groups) == 1:
		return PackageSingleGroup
	default:
		return PackageMultipleGroups
	}
}

func (s *Selector) SelectedClubs() []int64    { return sortedIDs(s.clubs) }
func (s *Selector) SelectedSections() []int64 { return sortedIDs(s.sections) }
func (s *Selector) SelectedGroups() []int64   { return sortedIDs(s.groups) }

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
