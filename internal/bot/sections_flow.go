package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbase/clubstaff/internal/dialog"
	"github.com/fitbase/clubstaff/internal/domain/sections"
)

/*** Секция с группами: клуб → название → группы → подтверждение.
Записи на бэкенд идут строго по порядку, отката нет: что успело
создаться до сбоя — остаётся. ***/

func (b *Bot) startSection(ctx context.Context, chatID int64) {
	clubs := b.staff.Clubs()
	if len(clubs) == 0 {
		b.bridge.ShowAlert(chatID, "Сначала загрузите клубы: /reload")
		return
	}
	b.setSecDraft(chatID, &sectionDraft{})
	_ = b.states.Set(ctx, chatID, dialog.StateSecClub, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "В каком клубе создаём секцию?")
	m.ReplyMarkup = clubsKeyboard(clubs, "sec:club")
	b.send(m)
}

func (b *Bot) sectionGotClub(ctx context.Context, chatID, clubID int64) {
	d := b.secDraft(chatID)
	if d == nil {
		return
	}
	d.clubID = clubID
	_ = b.states.Set(ctx, chatID, dialog.StateSecName, dialog.Payload{})
	b.send(tgbotapi.NewMessage(chatID, "Название секции:"))
}

func (b *Bot) sectionGotName(ctx context.Context, chatID int64, text string, st *dialog.Item) {
	d := b.secDraft(chatID)
	if d == nil {
		return
	}
	d.name = strings.TrimSpace(text)
	_ = b.states.Set(ctx, chatID, dialog.StateSecGroups, st.Payload)
	b.send(tgbotapi.NewMessage(chatID,
		"Группы, по строке на группу: Название;уровень;вместимость\nНапример:\nНачинающие;beginner;12\nПродвинутые;advanced;8"))
}

func (b *Bot) sectionGotGroups(ctx context.Context, chatID int64, text string) {
	d := b.secDraft(chatID)
	if d == nil {
		return
	}
	var groups []sections.GroupSpec
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		parts := strings.Split(line, ";")
		if len(parts) != 3 {
			b.bridge.ShowAlert(chatID, fmt.Sprintf("Строка %q: нужен формат «Название;уровень;вместимость»", line))
			return
		}
		cap64, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || cap64 <= 0 {
			b.bridge.ShowAlert(chatID, "Вместимость — целое число больше нуля")
			return
		}
		level := strings.TrimSpace(parts[1])
		groups = append(groups, sections.GroupSpec{
			Name:     strings.TrimSpace(parts[0]),
			Level:    &level,
			Capacity: &cap64,
		})
	}
	d.groups = groups
	_ = b.states.Set(ctx, chatID, dialog.StateSecConfirm, dialog.Payload{})

	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Секция «%s», групп: %d. Создать?", d.name, len(d.groups)))
	m.ReplyMarkup = confirmKeyboard("sec:send")
	b.send(m)
}

func (b *Bot) sectionSend(ctx context.Context, chatID int64, messageID int) {
	d := b.secDraft(chatID)
	if d == nil {
		return
	}
	rep := b.pipeline.Run(ctx, sections.SectionSpec{
		ClubID: d.clubID,
		Name:   d.name,
		Groups: d.groups,
	})
	_ = b.states.Reset(ctx, chatID)
	b.setSecDraft(chatID, nil)

	if !rep.Ok() {
		// частичный прогресс сохраняется — сообщаем, что успело создаться
		text := fmt.Sprintf("Сбой на шаге «%s». Уже создано: %s.",
			rep.FailedStep, strings.Join(rep.Committed, ", "))
		if len(rep.Committed) == 0 {
			text = fmt.Sprintf("Сбой на шаге «%s». Ничего не создано.", rep.FailedStep)
		}
		b.editTextAndClear(chatID, messageID, text)
		return
	}
	b.editTextAndClear(chatID, messageID,
		fmt.Sprintf("Секция «%s» и %d групп(ы) созданы.", d.name, len(d.groups)))
}
