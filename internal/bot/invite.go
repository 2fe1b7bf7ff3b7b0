package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbase/clubstaff/internal/dialog"
	"github.com/fitbase/clubstaff/internal/domain/staff"
)

/*** Приглашение сотрудника: телефон → роль → клуб → подтверждение ***/

func (b *Bot) startInvite(ctx context.Context, chatID int64) {
	_ = b.states.Set(ctx, chatID, dialog.StateInvPhone, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Телефон сотрудника (например, +7 700 000 00 00):")
	m.ReplyMarkup = navKeyboard(true)
	b.send(m)
}

func (b *Bot) inviteGotPhone(ctx context.Context, chatID int64, text string, st *dialog.Item) {
	p := st.Payload
	p["phone"] = text
	_ = b.states.Set(ctx, chatID, dialog.StateInvRole, p)
	m := tgbotapi.NewMessage(chatID, "Роль приглашаемого:")
	m.ReplyMarkup = inviteRoleKeyboard()
	b.send(m)
}

func (b *Bot) inviteGotRole(ctx context.Context, chatID int64, role string) {
	st, _ := b.states.Get(ctx, chatID)
	p := st.Payload
	p["role"] = role
	_ = b.states.Set(ctx, chatID, dialog.StateInvClub, p)

	clubs := b.staff.Clubs()
	if len(clubs) == 0 {
		b.bridge.ShowAlert(chatID, "Нет клубов, доступных для приглашения")
		return
	}
	m := tgbotapi.NewMessage(chatID, "В какой клуб приглашаем?")
	m.ReplyMarkup = clubsKeyboard(clubs, "inv:club")
	b.send(m)
}

func (b *Bot) inviteGotClub(ctx context.Context, chatID, clubID int64) {
	st, _ := b.states.Get(ctx, chatID)
	p := st.Payload
	p["club_id"] = float64(clubID)
	_ = b.states.Set(ctx, chatID, dialog.StateInvConfirm, p)

	phone, _ := dialog.GetString(p, "phone")
	role, _ := dialog.GetString(p, "role")
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Приглашение:\nТелефон: %s\nРоль: %s\nКлуб: %d\n\nОтправить?",
		phone, roleLabel(staff.ParseRole(role)), clubID))
	m.ReplyMarkup = confirmKeyboard("inv:send")
	b.send(m)
}

func (b *Bot) inviteSend(ctx context.Context, chatID int64, messageID int) {
	st, _ := b.states.Get(ctx, chatID)
	phone, _ := dialog.GetString(st.Payload, "phone")
	role, _ := dialog.GetString(st.Payload, "role")
	clubID, _ := dialog.GetInt64(st.Payload, "club_id")

	err := b.staff.Invite(ctx, staff.InviteForm{Phone: phone, Role: role, ClubID: clubID})
	if err != nil {
		b.log.Error("invite failed", "club_id", clubID, "err", err)
		b.bridge.ShowAlert(chatID, "Приглашение не отправлено: проверьте телефон и роль")
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.editTextAndClear(chatID, messageID, "Приглашение отправлено. Появится в списке со статусом ⏳.")
}
