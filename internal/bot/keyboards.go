package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/domain/staff"
)

func navKeyboard(cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// adminReplyKeyboard Нижняя панель для владельца/админа
func adminReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("👥 Сотрудники"),
			tgbotapi.NewKeyboardButton("📨 Пригласить"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("💳 Новый тариф"),
			tgbotapi.NewKeyboardButton("🏷 Новая секция"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📤 Экспорт ростера"),
		),
	)
}

func staffListKeyboard(roster []staff.Employee) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(roster))
	for _, e := range roster {
		label := fmt.Sprintf("%s %s · %s", statusBadge(e.Status), displayName(e), roleLabel(e.PrimaryRole))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "st:card:"+e.IdentityKey),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// staffCardKeyboard — действия по клубам сотрудника. Кнопки появляются только
// там, где роль актора это позволяет; бэкенд проверит ещё раз.
func (b *Bot) staffCardKeyboard(e staff.Employee) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, cr := range e.ClubRoles {
		actor, ok := b.staff.ActorRoleIn(cr.ClubID)
		if !ok {
			continue
		}
		row := []tgbotapi.InlineKeyboardButton{}
		if cr.Status == staff.StatusPending && cr.InvitationID != nil {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 Отозвать приглашение (клуб %d)", cr.ClubID),
				fmt.Sprintf("st:inv:del:%d", *cr.InvitationID),
			))
		} else {
			if staff.CanActOn(actor, cr.Role, staff.ActionChangeRole) {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("🔁 Роль (клуб %d)", cr.ClubID),
					fmt.Sprintf("st:role:%d:%s", cr.ClubID, e.IdentityKey),
				))
			}
			if staff.CanActOn(actor, cr.Role, staff.ActionRemove) {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("❌ Убрать (клуб %d)", cr.ClubID),
					fmt.Sprintf("st:rm:%d:%s", cr.ClubID, e.IdentityKey),
				))
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ К списку", "st:list"),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func roleSetKeyboard(clubID int64, key string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Администратор", fmt.Sprintf("st:role:set:%d:admin:%s", clubID, key)),
			tgbotapi.NewInlineKeyboardButtonData("Тренер", fmt.Sprintf("st:role:set:%d:coach:%s", clubID, key)),
		),
		navKeyboard(true).InlineKeyboard[0],
	)
}

func confirmRemoveKeyboard(clubID int64, key string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да, убрать", fmt.Sprintf("st:rm:yes:%d:%s", clubID, key)),
			tgbotapi.NewInlineKeyboardButtonData("Нет", "st:list"),
		),
	)
}

func inviteRoleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Администратор", "inv:role:admin"),
			tgbotapi.NewInlineKeyboardButtonData("Тренер", "inv:role:coach"),
		),
		navKeyboard(true).InlineKeyboard[0],
	)
}

func clubsKeyboard(clubs []backend.ClubWithRole, prefix string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(clubs)+1)
	for _, c := range clubs {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Club.Name, fmt.Sprintf("%s:%d", prefix, c.Club.ID)),
		))
	}
	rows = append(rows, navKeyboard(true).InlineKeyboard[0])
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func confirmKeyboard(sendData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📨 Отправить", sendData),
		),
		navKeyboard(true).InlineKeyboard[0],
	)
}

// accessKeyboard — дерево чекбоксов области доступа. Отметки считаются
// запросами к селектору, выбранный предок гасит контролы потомков.
func (b *Bot) accessKeyboard(d *tariffDraft) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	clubs := b.staff.Clubs()
	for _, c := range clubs {
		mark := "⬜️"
		if d.scope.IsClubFullySelected(c.Club.ID) {
			mark = "☑️"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s 🏢 %s", mark, c.Club.Name),
				fmt.Sprintf("tar:acc:club:%d", c.Club.ID),
			),
		))
		for _, s := range d.sections {
			if s.ClubID != c.Club.ID {
				continue
			}
			mark := "⬜️"
			if d.scope.IsSectionFullySelected(s.ID) {
				mark = "☑️"
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s — %s", mark, s.Name),
					fmt.Sprintf("tar:acc:sec:%d", s.ID),
				),
			))
			for _, g := range s.Groups {
				mark := "⬜️"
				if d.scope.IsGroupSelected(g.ID, s.ID) {
					mark = "☑️"
				}
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(
						fmt.Sprintf("%s —— %s", mark, g.Name),
						fmt.Sprintf("tar:acc:grp:%d:%d", s.ID, g.ID),
					),
				))
			}
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Готово", "tar:acc:done"),
	))
	rows = append(rows, navKeyboard(true).InlineKeyboard[0])
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
