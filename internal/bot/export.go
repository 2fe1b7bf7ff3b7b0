package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/fitbase/clubstaff/internal/domain/staff"
)

// exportRoster выгружает текущий ростер в Excel и отправляет файлом в чат.
func (b *Bot) exportRoster(ctx context.Context, chatID int64) {
	roster, err := b.staff.LoadRoster(ctx)
	if err != nil {
		b.log.Error("roster load for export failed", "err", err)
		b.bridge.ShowAlert(chatID, "Не удалось собрать данные для выгрузки")
		return
	}

	data, err := rosterToXLSX(roster)
	if err != nil {
		b.log.Error("xlsx build failed", "err", err)
		b.bridge.ShowAlert(chatID, "Не удалось сформировать файл")
		return
	}

	name := fmt.Sprintf("roster_%s.xlsx", time.Now().Format("2006-01-02"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = fmt.Sprintf("Сотрудники: %d", len(roster))
	b.send(doc)
}

func rosterToXLSX(roster []staff.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"
	headers := []string{"Имя", "Фамилия", "Телефон", "Основная роль", "Статус", "Клубы"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, e := range roster {
		clubs := make([]string, 0, len(e.ClubRoles))
		for _, cr := range e.ClubRoles {
			clubs = append(clubs, fmt.Sprintf("%d:%s(%s)", cr.ClubID, cr.Role, cr.Status))
		}
		row := []any{e.FirstName, e.LastName, e.Phone, string(e.PrimaryRole), string(e.Status), strings.Join(clubs, ", ")}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
