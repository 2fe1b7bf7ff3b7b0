package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbase/clubstaff/internal/dialog"
)

// allowed — бот обслуживает только чат владельца/админа, если он задан.
func (b *Bot) allowed(chatID int64) bool {
	return b.adminChat == 0 || chatID == b.adminChat
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	chatID := msg.Chat.ID
	if !b.allowed(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Доступ запрещён."))
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	switch msg.Text {
	case "👥 Сотрудники":
		b.showRoster(ctx, chatID)
		return
	case "📨 Пригласить":
		b.startInvite(ctx, chatID)
		return
	case "💳 Новый тариф":
		b.startTariff(ctx, chatID)
		return
	case "🏷 Новая секция":
		b.startSection(ctx, chatID)
		return
	case "📤 Экспорт ростера":
		b.exportRoster(ctx, chatID)
		return
	}

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("dialog state read failed", "err", err)
		return
	}
	switch st.State {
	case dialog.StateInvPhone:
		b.inviteGotPhone(ctx, chatID, msg.Text, st)
	case dialog.StateTarName:
		b.tariffGotName(ctx, chatID, msg.Text)
	case dialog.StateTarPrice:
		b.tariffGotPrice(ctx, chatID, msg.Text)
	case dialog.StateTarSchedule:
		b.tariffGotSchedule(ctx, chatID, msg.Text)
	case dialog.StateTarValidity:
		b.tariffGotValidity(ctx, chatID, msg.Text)
	case dialog.StateSecName:
		b.sectionGotName(ctx, chatID, msg.Text, st)
	case dialog.StateSecGroups:
		b.sectionGotGroups(ctx, chatID, msg.Text)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Используйте меню снизу или /help."))
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		m := tgbotapi.NewMessage(chatID,
			"Управление персоналом клубов: сотрудники, приглашения, роли, тарифы.")
		m.ReplyMarkup = adminReplyKeyboard()
		b.send(m)
		if _, err := b.staff.LoadRoster(ctx); err != nil {
			b.log.Error("initial roster load failed", "err", err)
		}
	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Команды:\n/start — меню\n/staff — список сотрудников\n/reload — пересобрать ростер\n/help — помощь"))
	case "staff":
		b.showRoster(ctx, chatID)
	case "reload":
		if _, err := b.staff.LoadRoster(ctx); err != nil {
			b.bridge.ShowAlert(chatID, "Не удалось обновить данные")
			return
		}
		b.send(tgbotapi.NewMessage(chatID, "Ростер обновлён."))
	default:
		b.send(tgbotapi.NewMessage(chatID, "Неизвестная команда, /help."))
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	data := cb.Data
	_ = b.answerCallback(cb, "", false)
	if !b.allowed(chatID) {
		return
	}

	switch {
	case data == "nav:cancel":
		_ = b.states.Reset(ctx, chatID)
		b.setDraft(chatID, nil)
		b.setSecDraft(chatID, nil)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Отменено.")

	case data == "st:list":
		b.showRoster(ctx, chatID)

	case strings.HasPrefix(data, "st:card:"):
		b.showStaffCard(chatID, strings.TrimPrefix(data, "st:card:"))

	case strings.HasPrefix(data, "st:inv:del:"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "st:inv:del:"), 10, 64)
		b.cancelInvitation(ctx, chatID, id)

	case strings.HasPrefix(data, "st:role:set:"):
		// st:role:set:<clubID>:<role>:<key>
		parts := strings.SplitN(strings.TrimPrefix(data, "st:role:set:"), ":", 3)
		if len(parts) != 3 {
			return
		}
		clubID, _ := strconv.ParseInt(parts[0], 10, 64)
		b.changeRole(ctx, chatID, clubID, parts[2], parts[1])

	case strings.HasPrefix(data, "st:role:"):
		// st:role:<clubID>:<key>
		parts := strings.SplitN(strings.TrimPrefix(data, "st:role:"), ":", 2)
		if len(parts) != 2 {
			return
		}
		clubID, _ := strconv.ParseInt(parts[0], 10, 64)
		m := tgbotapi.NewMessage(chatID, "Новая роль:")
		m.ReplyMarkup = roleSetKeyboard(clubID, parts[1])
		b.send(m)

	case strings.HasPrefix(data, "st:rm:yes:"):
		parts := strings.SplitN(strings.TrimPrefix(data, "st:rm:yes:"), ":", 2)
		if len(parts) != 2 {
			return
		}
		clubID, _ := strconv.ParseInt(parts[0], 10, 64)
		b.removeMember(ctx, chatID, clubID, parts[1])

	case strings.HasPrefix(data, "st:rm:"):
		parts := strings.SplitN(strings.TrimPrefix(data, "st:rm:"), ":", 2)
		if len(parts) != 2 {
			return
		}
		clubID, _ := strconv.ParseInt(parts[0], 10, 64)
		m := tgbotapi.NewMessage(chatID, "Убрать сотрудника из клуба?")
		m.ReplyMarkup = confirmRemoveKeyboard(clubID, parts[1])
		b.send(m)

	case strings.HasPrefix(data, "inv:role:"):
		b.inviteGotRole(ctx, chatID, strings.TrimPrefix(data, "inv:role:"))

	case strings.HasPrefix(data, "inv:club:"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "inv:club:"), 10, 64)
		b.inviteGotClub(ctx, chatID, id)

	case data == "inv:send":
		b.inviteSend(ctx, chatID, cb.Message.MessageID)

	case strings.HasPrefix(data, "tar:acc:"):
		b.tariffAccessToggle(ctx, chatID, cb.Message.MessageID, strings.TrimPrefix(data, "tar:acc:"))

	case data == "tar:send":
		b.tariffSend(ctx, chatID, cb.Message.MessageID)

	case strings.HasPrefix(data, "sec:club:"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "sec:club:"), 10, 64)
		b.sectionGotClub(ctx, chatID, id)

	case data == "sec:send":
		b.sectionSend(ctx, chatID, cb.Message.MessageID)
	}
}
