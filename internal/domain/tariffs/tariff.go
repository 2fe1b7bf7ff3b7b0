package tariffs

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/domain/access"
	"github.com/fitbase/clubstaff/internal/domain/schedule"
)

// Draft — тарифный пакет до сабмита. Область доступа живёт в Selector,
// остальное — обычная форма.
type Draft struct {
	Name       string `validate:"required,min=2,max=120"`
	Price      int    `validate:"required,gt=0"`
	ValidFrom  time.Time
	ValidUntil time.Time
	Rows       []schedule.Row
	Scope      *access.Selector `validate:"required"`
}

var v = validator.New()

// Validate проверяет форму до любого сетевого вызова: сперва поля, затем
// область доступа ("ничего не выбрано" тарифом не бывает).
func (d *Draft) Validate() error {
	if err := v.Struct(d); err != nil {
		return fmt.Errorf("tariff form: %w", err)
	}
	if err := d.Scope.Validate(); err != nil {
		return err
	}
	return nil
}

// BuildRequest собирает запрос на создание тарифа. Тип пакета выводится
// из выбора заново в момент сабмита. Расписание идёт через строгий
// вариант билдера: здесь зажим недопустим.
func (d *Draft) BuildRequest() (backend.CreateTariffRequest, error) {
	if err := d.Validate(); err != nil {
		return backend.CreateTariffRequest{}, err
	}
	pat, err := schedule.BuildValidated(d.Rows, d.ValidFrom, d.ValidUntil)
	if err != nil {
		return backend.CreateTariffRequest{}, err
	}

	weekly := make(map[string][]backend.Slot, len(pat.Weekly))
	for day, slots := range pat.Weekly {
		for _, s := range slots {
			weekly[day] = append(weekly[day], backend.Slot{Time: s.Time, Duration: s.Duration})
		}
	}

	return backend.CreateTariffRequest{
		Name:        d.Name,
		Price:       d.Price,
		PackageType: string(d.Scope.Classify()),
		ClubIDs:     d.Scope.SelectedClubs(),
		SectionIDs:  d.Scope.SelectedSections(),
		GroupIDs:    d.Scope.SelectedGroups(),
		ValidFrom:   pat.ValidFrom.Format("2006-01-02"),
		ValidUntil:  pat.ValidUntil.Format("2006-01-02"),
		Schedule:    weekly,
	}, nil
}
