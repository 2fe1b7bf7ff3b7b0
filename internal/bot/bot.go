package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/dialog"
	"github.com/fitbase/clubstaff/internal/domain/access"
	"github.com/fitbase/clubstaff/internal/domain/schedule"
	"github.com/fitbase/clubstaff/internal/domain/sections"
	"github.com/fitbase/clubstaff/internal/domain/staff"
)

// Bridge — инжектируемые пользовательские уведомления (alert мини-аппа).
// В тестах подменяется фейком, чтобы хендлеры не тянули Telegram.
type Bridge interface {
	ShowAlert(chatID int64, text string)
}

type tgBridge struct {
	api *tgbotapi.BotAPI
	log *slog.Logger
}

func (b tgBridge) ShowAlert(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, "⚠️ "+text)); err != nil {
		b.log.Error("alert send failed", "err", err)
	}
}

// tariffDraft — состояние открытого конструктора тарифа. Живёт в памяти от
// открытия до сабмита/отмены, в dialog payload не сериализуется.
type tariffDraft struct {
	name       string
	price      int
	sections   []backend.Section
	scope      *access.Selector
	rows       []schedule.Row
	from       time.Time
	until      time.Time
}

type sectionDraft struct {
	clubID int64
	name   string
	groups []sections.GroupSpec
}

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	staff     *staff.Service
	backend   backend.Client
	pipeline  *sections.Pipeline
	states    *dialog.Repo
	bridge    Bridge
	adminChat int64

	mu        sync.Mutex
	tariffs   map[int64]*tariffDraft
	sectionDr map[int64]*sectionDraft
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, staffSvc *staff.Service,
	backendAPI backend.Client, statesRepo *dialog.Repo, adminChatID int64) *Bot {

	return &Bot{
		api:       api,
		log:       log,
		staff:     staffSvc,
		backend:   backendAPI,
		pipeline:  sections.NewPipeline(backendAPI, log),
		states:    statesRepo,
		bridge:    tgBridge{api: api, log: log},
		adminChat: adminChatID,
		tariffs:   make(map[int64]*tariffDraft),
		sectionDr: make(map[int64]*sectionDraft),
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) draft(chatID int64) *tariffDraft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tariffs[chatID]
}

func (b *Bot) setDraft(chatID int64, d *tariffDraft) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d == nil {
		delete(b.tariffs, chatID)
		return
	}
	b.tariffs[chatID] = d
}

func (b *Bot) secDraft(chatID int64) *sectionDraft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sectionDr[chatID]
}

func (b *Bot) setSecDraft(chatID int64, d *sectionDraft) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d == nil {
		delete(b.sectionDr, chatID)
		return
	}
	b.sectionDr[chatID] = d
}
