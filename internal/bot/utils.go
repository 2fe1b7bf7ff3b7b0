package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbase/clubstaff/internal/domain/staff"
)

/*** HELPERS ***/

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

// Бейдж статуса
func statusBadge(s staff.Status) string {
	if s == staff.StatusActive {
		return "🟢"
	}
	return "⏳"
}

func roleLabel(r staff.Role) string {
	switch r {
	case staff.RoleOwner:
		return "Владелец"
	case staff.RoleAdmin:
		return "Администратор"
	default:
		return "Тренер"
	}
}

func displayName(e staff.Employee) string {
	if e.Ghost() {
		return "Приглашение: " + e.Phone
	}
	return e.FullName()
}
