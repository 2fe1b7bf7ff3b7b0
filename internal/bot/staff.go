package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbase/clubstaff/internal/domain/staff"
)

func (b *Bot) showRoster(ctx context.Context, chatID int64) {
	roster, err := b.staff.LoadRoster(ctx)
	if err != nil {
		b.log.Error("roster load failed", "err", err)
		b.bridge.ShowAlert(chatID, "Не удалось загрузить сотрудников")
		return
	}
	if len(roster) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Сотрудников пока нет. Отправьте приглашение."))
		return
	}
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf("Сотрудники (%d):", len(roster)))
	m.ReplyMarkup = staffListKeyboard(roster)
	b.send(m)
}

func (b *Bot) showStaffCard(chatID int64, key string) {
	e, ok := b.staff.Find(key)
	if !ok {
		b.bridge.ShowAlert(chatID, "Сотрудник не найден, обновите список")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", statusBadge(e.Status), displayName(e))
	fmt.Fprintf(&sb, "Телефон: %s\n", e.Phone)
	if e.Username != nil && *e.Username != "" {
		fmt.Fprintf(&sb, "Telegram: @%s\n", *e.Username)
	}
	fmt.Fprintf(&sb, "Основная роль: %s\n\nКлубы:\n", roleLabel(e.PrimaryRole))
	for _, cr := range e.ClubRoles {
		fmt.Fprintf(&sb, "  %s клуб %d — %s", statusBadge(cr.Status), cr.ClubID, roleLabel(cr.Role))
		if cr.Status == staff.StatusPending && cr.Origin == staff.OriginInvitation {
			sb.WriteString(" (приглашение не принято)")
		}
		sb.WriteString("\n")
	}

	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ReplyMarkup = b.staffCardKeyboard(e)
	b.send(m)
}

func (b *Bot) changeRole(ctx context.Context, chatID, clubID int64, key, role string) {
	err := b.staff.ChangeRole(ctx, clubID, key, staff.ParseRole(role))
	switch {
	case errors.Is(err, staff.ErrNotAllowed):
		b.bridge.ShowAlert(chatID, "Недостаточно прав для смены роли")
	case err != nil:
		b.log.Error("role change failed", "club_id", clubID, "err", err)
		b.bridge.ShowAlert(chatID, "Не удалось сменить роль, попробуйте ещё раз")
	default:
		b.send(tgbotapi.NewMessage(chatID, "Роль обновлена."))
		b.showStaffCard(chatID, key)
	}
}

func (b *Bot) removeMember(ctx context.Context, chatID, clubID int64, key string) {
	err := b.staff.RemoveMember(ctx, clubID, key)
	switch {
	case errors.Is(err, staff.ErrNotAllowed):
		b.bridge.ShowAlert(chatID, "Недостаточно прав для удаления")
	case err != nil:
		b.log.Error("member removal failed", "club_id", clubID, "err", err)
		b.bridge.ShowAlert(chatID, "Не удалось убрать сотрудника")
	default:
		b.send(tgbotapi.NewMessage(chatID, "Сотрудник убран из клуба."))
		b.showRoster(ctx, chatID)
	}
}

func (b *Bot) cancelInvitation(ctx context.Context, chatID, invitationID int64) {
	if err := b.staff.CancelInvitation(ctx, invitationID); err != nil {
		b.log.Error("invitation cancel failed", "invitation_id", invitationID, "err", err)
		b.bridge.ShowAlert(chatID, "Не удалось отозвать приглашение")
		return
	}
	b.send(tgbotapi.NewMessage(chatID, "Приглашение отозвано."))
	b.showRoster(ctx, chatID)
}
