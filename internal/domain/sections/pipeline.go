package sections

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/domain/schedule"
)

// GroupSpec — группа внутри создаваемой секции.
type GroupSpec struct {
	Name     string
	Level    *string
	Capacity *int
	Rows     []schedule.Row
}

type SectionSpec struct {
	ClubID     int64
	Name       string
	ValidFrom  string
	ValidUntil string
	Groups     []GroupSpec
}

// Report — итог последовательного конвейера записи. Откатов нет: всё,
// что успело закоммититься до сбоя, остаётся на бэкенде.
type Report struct {
	Committed  []string
	FailedStep string
	Err        error
}

func (r Report) Ok() bool { return r.Err == nil }

// Pipeline выполняет зависимые записи строго по порядку:
// секция → все её группы → генерация занятий по каждой группе.
type Pipeline struct {
	api backend.Client
	log *slog.Logger
}

func NewPipeline(api backend.Client, log *slog.Logger) *Pipeline {
	return &Pipeline{api: api, log: log}
}

func (p *Pipeline) Run(ctx context.Context, spec SectionSpec) Report {
	var rep Report

	sec, err := p.api.CreateSection(ctx, backend.CreateSectionRequest{
		ClubID: spec.ClubID,
		Name:   spec.Name,
	})
	if err != nil {
		return p.fail(rep, "create section", err)
	}
	rep.Committed = append(rep.Committed, fmt.Sprintf("section %q", spec.Name))

	created := make([]backend.Group, 0, len(spec.Groups))
	for _, g := range spec.Groups {
		grp, err := p.api.CreateGroup(ctx, sec.ID, backend.CreateGroupRequest{
			Name:     g.Name,
			Level:    g.Level,
			Capacity: g.Capacity,
		})
		if err != nil {
			return p.fail(rep, fmt.Sprintf("create group %q", g.Name), err)
		}
		rep.Committed = append(rep.Committed, fmt.Sprintf("group %q", g.Name))
		created = append(created, *grp)
	}

	for i, g := range spec.Groups {
		if len(g.Rows) == 0 {
			continue
		}
		pat := schedule.Build(g.Rows, parseDate(spec.ValidFrom), parseDate(spec.ValidUntil))
		weekly := make(map[string][]backend.Slot, len(pat.Weekly))
		for day, slots := range pat.Weekly {
			for _, s := range slots {
				weekly[day] = append(weekly[day], backend.Slot{Time: s.Time, Duration: s.Duration})
			}
		}
		err := p.api.GenerateLessons(ctx, created[i].ID, backend.GenerateLessonsRequest{
			WeeklyPattern: weekly,
			ValidFrom:     spec.ValidFrom,
			ValidUntil:    spec.ValidUntil,
		})
		if err != nil {
			return p.fail(rep, fmt.Sprintf("generate lessons for %q", g.Name), err)
		}
		rep.Committed = append(rep.Committed, fmt.Sprintf("lessons %q", g.Name))
	}
	return rep
}

func parseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func (p *Pipeline) fail(rep Report, step string, err error) Report {
	p.log.Error("section pipeline step failed",
		"step", step, "committed", len(rep.Committed), "err", err)
	rep.FailedStep = step
	rep.Err = err
	return rep
}
