package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbase/clubstaff/internal/dialog"
	"github.com/fitbase/clubstaff/internal/domain/access"
	"github.com/fitbase/clubstaff/internal/domain/schedule"
	"github.com/fitbase/clubstaff/internal/domain/tariffs"
)

/*** Конструктор тарифа: имя → цена → область доступа → расписание → период ***/

func (b *Bot) startTariff(ctx context.Context, chatID int64) {
	secs, err := b.backend.Sections(ctx)
	if err != nil {
		b.log.Error("sections load failed", "err", err)
		b.bridge.ShowAlert(chatID, "Не удалось загрузить секции")
		return
	}
	// выбор живёт от открытия конструктора до сабмита/отмены
	b.setDraft(chatID, &tariffDraft{
		sections: secs,
		scope:    access.NewSelector(access.NewIndex(secs)),
	})
	_ = b.states.Set(ctx, chatID, dialog.StateTarName, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Название тарифа:")
	m.ReplyMarkup = navKeyboard(true)
	b.send(m)
}

func (b *Bot) tariffGotName(ctx context.Context, chatID int64, text string) {
	d := b.draft(chatID)
	if d == nil {
		return
	}
	d.name = strings.TrimSpace(text)
	_ = b.states.Set(ctx, chatID, dialog.StateTarPrice, dialog.Payload{})
	b.send(tgbotapi.NewMessage(chatID, "Цена, ₸:"))
}

func (b *Bot) tariffGotPrice(ctx context.Context, chatID int64, text string) {
	d := b.draft(chatID)
	if d == nil {
		return
	}
	price, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || price <= 0 {
		b.bridge.ShowAlert(chatID, "Цена — целое число больше нуля")
		return
	}
	d.price = price
	_ = b.states.Set(ctx, chatID, dialog.StateTarAccess, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Что входит в тариф? Отметьте клубы, секции или группы:")
	m.ReplyMarkup = b.accessKeyboard(d)
	b.send(m)
}

func (b *Bot) tariffAccessToggle(ctx context.Context, chatID int64, messageID int, data string) {
	d := b.draft(chatID)
	if d == nil {
		return
	}

	switch {
	case data == "done":
		if err := d.scope.Validate(); err != nil {
			b.bridge.ShowAlert(chatID, "Выберите хотя бы один клуб, секцию или группу")
			return
		}
		_ = b.states.Set(ctx, chatID, dialog.StateTarSchedule, dialog.Payload{})
		b.editTextAndClear(chatID, messageID, "Область доступа сохранена.")
		b.send(tgbotapi.NewMessage(chatID,
			"Расписание, по строке на занятие: День ЧЧ:ММ ЧЧ:ММ\nНапример:\nMonday 10:00 11:30\nThursday 18:00 19:00"))
		return

	case strings.HasPrefix(data, "club:"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "club:"), 10, 64)
		d.scope.ToggleClub(id)

	case strings.HasPrefix(data, "sec:"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "sec:"), 10, 64)
		d.scope.ToggleSection(id)

	case strings.HasPrefix(data, "grp:"):
		parts := strings.SplitN(strings.TrimPrefix(data, "grp:"), ":", 2)
		if len(parts) != 2 {
			return
		}
		secID, _ := strconv.ParseInt(parts[0], 10, 64)
		gID, _ := strconv.ParseInt(parts[1], 10, 64)
		d.scope.ToggleGroup(gID, secID)
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, b.accessKeyboard(d))
	b.send(edit)
}

func (b *Bot) tariffGotSchedule(ctx context.Context, chatID int64, text string) {
	d := b.draft(chatID)
	if d == nil {
		return
	}
	rows, err := parseScheduleRows(text)
	if err != nil {
		b.bridge.ShowAlert(chatID, err.Error())
		return
	}
	d.rows = rows
	_ = b.states.Set(ctx, chatID, dialog.StateTarValidity, dialog.Payload{})
	b.send(tgbotapi.NewMessage(chatID, "Период действия: ГГГГ-ММ-ДД ГГГГ-ММ-ДД"))
}

func (b *Bot) tariffGotValidity(ctx context.Context, chatID int64, text string) {
	d := b.draft(chatID)
	if d == nil {
		return
	}
	fields := strings.Fields(text)
	if len(fields) != 2 {
		b.bridge.ShowAlert(chatID, "Нужны две даты: начало и конец")
		return
	}
	from, err1 := time.Parse("2006-01-02", fields[0])
	until, err2 := time.Parse("2006-01-02", fields[1])
	if err1 != nil || err2 != nil {
		b.bridge.ShowAlert(chatID, "Формат дат: ГГГГ-ММ-ДД")
		return
	}
	d.from, d.until = from, until
	_ = b.states.Set(ctx, chatID, dialog.StateTarConfirm, dialog.Payload{})

	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Тариф «%s»\nЦена: %d\nТип пакета: %s\nПериод: %s — %s\n\nСоздать?",
		d.name, d.price, d.scope.Classify(),
		from.Format("2006-01-02"), until.Format("2006-01-02")))
	m.ReplyMarkup = confirmKeyboard("tar:send")
	b.send(m)
}

func (b *Bot) tariffSend(ctx context.Context, chatID int64, messageID int) {
	d := b.draft(chatID)
	if d == nil {
		return
	}
	draft := tariffs.Draft{
		Name:       d.name,
		Price:      d.price,
		ValidFrom:  d.from,
		ValidUntil: d.until,
		Rows:       d.rows,
		Scope:      d.scope,
	}
	req, err := draft.BuildRequest()
	if err != nil {
		b.log.Error("tariff draft rejected", "err", err)
		b.bridge.ShowAlert(chatID, "Тариф не прошёл проверку: "+err.Error())
		return
	}
	if err := b.backend.CreateTariff(ctx, req); err != nil {
		b.log.Error("tariff create failed", "err", err)
		b.bridge.ShowAlert(chatID, "Не удалось создать тариф")
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.setDraft(chatID, nil)
	b.editTextAndClear(chatID, messageID, "Тариф создан.")
}

func parseScheduleRows(text string) ([]schedule.Row, error) {
	var rows []schedule.Row
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("строка %q: нужен формат «День ЧЧ:ММ ЧЧ:ММ»", line)
		}
		rows = append(rows, schedule.Row{Day: fields[0], Start: fields[1], End: fields[2]})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("расписание пустое")
	}
	return rows, nil
}
