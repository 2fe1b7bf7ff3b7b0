package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Row — строка расписания, как её вводит пользователь.
type Row struct {
	Day   string
	Start string // "15:04"
	End   string
}

type Slot struct {
	Time     string
	Duration int // минуты
}

// Pattern — недельный шаблон для бэкенда: канонический день → занятия.
type Pattern struct {
	Weekly     map[string][]Slot
	ValidFrom  time.Time
	ValidUntil time.Time
}

const (
	fallbackDuration = 60 // clamp для некорректных интервалов в легаси-пути
	minDuration      = 30
	maxDuration      = 300
	maxValiditySpan  = 180 * 24 * time.Hour
)

// Двунаправленная таблица: подписи дней ↔ канонические ключи.
var dayKeys = map[string]string{
	"Monday":    "monday",
	"Tuesday":   "tuesday",
	"Wednesday": "wednesday",
	"Thursday":  "thursday",
	"Friday":    "friday",
	"Saturday":  "saturday",
	"Sunday":    "sunday",
}

var dayLabels = func() map[string]string {
	m := make(map[string]string, len(dayKeys))
	for label, key := range dayKeys {
		m[key] = label
	}
	return m
}()

// CanonicalDay принимает и подпись, и уже канонический ключ. Незнакомая
// строка приводится к нижнему регистру (в нормальной работе не встречается).
func CanonicalDay(day string) string {
	if key, ok := dayKeys[day]; ok {
		return key
	}
	if _, ok := dayLabels[day]; ok {
		return day
	}
	return strings.ToLower(day)
}

// DayLabel — обратная сторона таблицы, для отображения.
func DayLabel(key string) string {
	if label, ok := dayLabels[key]; ok {
		return label
	}
	return key
}

// Build — легаси-вариант: длительность end−start тем же днём; всё
// неположительное (end ≤ start, переход через полночь, мусор на входе)
// молча зажимается в 60 минут. Это осознанное упрощение, не баг.
func Build(rows []Row, validFrom, validUntil time.Time) Pattern {
	weekly := make(map[string][]Slot, len(rows))
	for _, r := range rows {
		d, err := minutesBetween(r.Start, r.End)
		if err != nil || d <= 0 {
			d = fallbackDuration
		}
		key := CanonicalDay(r.Day)
		weekly[key] = append(weekly[key], Slot{Time: r.Start, Duration: d})
	}
	return Pattern{Weekly: weekly, ValidFrom: validFrom, ValidUntil: validUntil}
}

// BuildValidated — строгий вариант: вместо зажима — жёсткий отказ.
// Длительность вне [30, 300] минут и период действия длиннее 180 дней
// блокируют сабмит.
func BuildValidated(rows []Row, validFrom, validUntil time.Time) (Pattern, error) {
	if validUntil.Sub(validFrom) > maxValiditySpan {
		return Pattern{}, fmt.Errorf("validity span %s..%s exceeds 180 days",
			validFrom.Format("2006-01-02"), validUntil.Format("2006-01-02"))
	}
	weekly := make(map[string][]Slot, len(rows))
	for _, r := range rows {
		d, err := minutesBetween(r.Start, r.End)
		if err != nil {
			return Pattern{}, fmt.Errorf("schedule row %q: %w", r.Day, err)
		}
		if d < minDuration || d > maxDuration {
			return Pattern{}, fmt.Errorf("schedule row %q: duration %d min outside 30..300", r.Day, d)
		}
		key := CanonicalDay(r.Day)
		weekly[key] = append(weekly[key], Slot{Time: r.Start, Duration: d})
	}
	return Pattern{Weekly: weekly, ValidFrom: validFrom, ValidUntil: validUntil}, nil
}

func minutesBetween(start, end string) (int, error) {
	st, err := time.Parse("15:04", start)
	if err != nil {
		return 0, fmt.Errorf("bad start time %q: %w", start, err)
	}
	en, err := time.Parse("15:04", end)
	if err != nil {
		return 0, fmt.Errorf("bad end time %q: %w", end, err)
	}
	return int(en.Sub(st).Minutes()), nil
}
