package handlers

import (
	"context"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/beyabay/jubjub-bot/internal/database"
	"github.com/beyabay/jubjub-bot/internal/format"
	"github.com/beyabay/jubjub-bot/internal/reminders"
	"github.com/beyabay/jubjub-bot/internal/repository"
	"github.com/beyabay/jubjub-bot/internal/roast"
	"github.com/beyabay/jubjub-bot/internal/scheduler"
)

const helpText = `**JubJub at your service!**

**Reminders**
/remind <duration> <message> — one-time reminder, e.g. ` + "`/remind 1h30m stretch`" + `
/remindloop <cadence> <HH:MM> [leadDays] <message> — recurring reminder (daily, weekly, monthly, yearly)
/reminders [page] — list your reminders
/cancelreminder <id> — cancel a reminder
/snooze <id> [minutes] — push a reminder back (default 10)
/settimezone <±HH:MM> — set your UTC offset for displayed times

**Fun**
/gif <name> — fetch a stored GIF
/roast [@someone] — let JubJub roast them (or yourself)

**Utility**
/ping — latency check
/stats — command usage stats`

type Repositories struct {
	Gifs  *repository.GifRepository
	Usage *repository.UsageRepository
	Prefs *repository.PreferenceRepository
}

type Handlers struct {
	api     *tgbotapi.BotAPI
	svc     *reminders.Service
	repos   *Repositories
	roaster *roast.Roaster
	sched   *scheduler.Scheduler
	db      *database.DB
	ownerID int64
}

func New(api *tgbotapi.BotAPI, svc *reminders.Service, repos *Repositories, roaster *roast.Roaster, sched *scheduler.Scheduler, db *database.DB, ownerID int64) *Handlers {
	return &Handlers{
		api:     api,
		svc:     svc,
		repos:   repos,
		roaster: roaster,
		sched:   sched,
		db:      db,
		ownerID: ownerID,
	}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()
	h.track(ctx, msg.From.ID, command)

	switch command {
	case "start", "help":
		h.sendStyled(msg.Chat.ID, helpText)
	case "remind", "remindme":
		h.handleRemind(ctx, msg)
	case "remindloop":
		h.handleRemindLoop(ctx, msg)
	case "reminders", "checkreminders":
		h.handleReminderList(ctx, msg)
	case "cancelreminder":
		h.handleCancelReminder(ctx, msg)
	case "snooze":
		h.handleSnooze(ctx, msg)
	case "gif":
		h.handleGif(ctx, msg)
	case "gifadd":
		h.handleGifAdd(ctx, msg)
	case "ping":
		h.handlePing(ctx, msg)
	case "stats":
		h.handleStats(ctx, msg)
	case "roast":
		h.handleRoast(ctx, msg)
	case "settimezone":
		h.handleSetTimezone(ctx, msg)
	default:
		h.sendMessage(msg.Chat.ID, "Unknown command, try /help")
	}
}

func (h *Handlers) HandleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Answer callback to remove loading state
	answer := tgbotapi.NewCallback(callback.ID, "")
	if _, err := h.api.Request(answer); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}

	parts := strings.Split(callback.Data, ":")
	switch parts[0] {
	case "snooze":
		h.handleSnoozeCallback(ctx, callback, parts)
	case "remlist":
		h.handleListCallback(ctx, callback, parts)
	}
}

// track records command usage; failures are logged and never surfaced.
func (h *Handlers) track(ctx context.Context, userID int64, command string) {
	if err := h.repos.Usage.Track(ctx, userID, command); err != nil {
		log.Printf("Failed to track usage of /%s for user %d: %v", command, userID, err)
	}
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

// sendStyled renders **bold**/`code` spans into entities before sending.
func (h *Handlers) sendStyled(chatID int64, text string) {
	rendered := format.Render(text)
	msg := tgbotapi.NewMessage(chatID, rendered.Text)
	msg.Entities = rendered.Entities
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (h *Handlers) answerCallbackWithAlert(callbackID, text string) {
	alert := tgbotapi.NewCallbackWithAlert(callbackID, text)
	if _, err := h.api.Request(alert); err != nil {
		log.Printf("Failed to answer callback with alert: %v", err)
	}
}

func parseInt64(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}
