package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/beyabay/jubjub-bot/internal/format"
	"github.com/beyabay/jubjub-bot/internal/models"
	"github.com/beyabay/jubjub-bot/internal/reminders"
	"github.com/beyabay/jubjub-bot/internal/timezone"
)

const durationUsage = "Use something like `14m`, `1h30m`, `2d5s`, or `10s`."

func (h *Handlers) handleRemind(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		h.sendStyled(msg.Chat.ID, "Usage: `/remind <duration> <message>`\n"+durationUsage)
		return
	}

	delay, message, err := reminders.ParseDuration(args)
	if err != nil {
		h.sendStyled(msg.Chat.ID, "❌ **Invalid Time Format**\n"+durationUsage)
		return
	}

	r, err := h.svc.Create(ctx, msg.From.ID, msg.Chat.ID, message, delay, models.RecurrenceNone, "")
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to set the reminder, please try again.")
		return
	}
	h.sched.Notify()

	h.sendStyled(msg.Chat.ID, fmt.Sprintf("✅ **Reminder Set!**\nI'll remind you to: **%s**\nWhen: %s",
		r.Message, h.localized(ctx, msg.From.ID, r.ReminderTime)))
}

func (h *Handlers) handleRemindLoop(ctx context.Context, msg *tgbotapi.Message) {
	fields := strings.Fields(msg.CommandArguments())
	if len(fields) < 3 {
		h.sendStyled(msg.Chat.ID, "Usage: `/remindloop <cadence> <HH:MM> [leadDays] <message>`\nCadence is one of: daily, weekly, monthly, yearly.")
		return
	}

	cadence := models.Recurrence(strings.ToLower(fields[0]))
	if !cadence.Valid() || cadence == models.RecurrenceNone {
		h.sendMessage(msg.Chat.ID, "Cadence must be one of: daily, weekly, monthly, yearly.")
		return
	}

	timeOfDay := fields[1]
	rest := fields[2:]

	// Optional lead: whole days before the first occurrence.
	var delay time.Duration
	if days, err := strconv.Atoi(rest[0]); err == nil && len(rest) > 1 {
		delay = time.Duration(days) * 24 * time.Hour
		rest = rest[1:]
	}

	r, err := h.svc.Create(ctx, msg.From.ID, msg.Chat.ID, strings.Join(rest, " "), delay, cadence, timeOfDay)
	switch {
	case errors.Is(err, reminders.ErrInvalidTimeOfDay):
		h.sendStyled(msg.Chat.ID, "❌ **Invalid Time Format**\nTime must be `HH:MM`, e.g. `07:00` or `19:00`.")
		return
	case err != nil:
		h.sendMessage(msg.Chat.ID, "Failed to set the reminder, please try again.")
		return
	}
	h.sched.Notify()

	h.sendStyled(msg.Chat.ID, fmt.Sprintf("✅ **Reminder Set!**\nI'll remind you to: **%s**\nRecurring: %s at %s\nFirst time: %s",
		r.Message, r.Recurrence, r.RecurrenceTime, h.localized(ctx, msg.From.ID, r.ReminderTime)))
}

func (h *Handlers) handleReminderList(ctx context.Context, msg *tgbotapi.Message) {
	page := 0
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		if p, err := strconv.Atoi(arg); err == nil && p > 0 {
			page = p - 1 // users count pages from 1
		}
	}

	text, keyboard, err := h.renderReminderList(ctx, msg.From.ID, true, page)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to fetch your reminders, please try again.")
		return
	}

	rendered := format.Render(text)
	out := tgbotapi.NewMessage(msg.Chat.ID, rendered.Text)
	out.Entities = rendered.Entities
	out.ReplyMarkup = keyboard
	if _, err := h.api.Send(out); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to fetch your reminders, please try again.")
	}
}

func (h *Handlers) handleCancelReminder(ctx context.Context, msg *tgbotapi.Message) {
	id, ok := parseInt64(strings.TrimSpace(msg.CommandArguments()))
	if !ok {
		h.sendStyled(msg.Chat.ID, "Usage: `/cancelreminder <id>` (see /reminders for ids)")
		return
	}

	message, err := h.svc.Cancel(ctx, msg.From.ID, id)
	switch {
	case errors.Is(err, reminders.ErrNotFound):
		h.sendStyled(msg.Chat.ID, fmt.Sprintf("❌ **Reminder Not Found**\nNo active reminder with ID `%d`. Use /reminders to see yours.", id))
	case err != nil:
		h.sendMessage(msg.Chat.ID, "Something went wrong while canceling the reminder. Try again later.")
	default:
		h.sendStyled(msg.Chat.ID, fmt.Sprintf("🗑 **Reminder Canceled!**\nReminder `%d` has been canceled: **%s**", id, message))
	}
}

func (h *Handlers) handleSnooze(ctx context.Context, msg *tgbotapi.Message) {
	fields := strings.Fields(msg.CommandArguments())
	if len(fields) == 0 {
		h.sendStyled(msg.Chat.ID, "Usage: `/snooze <id> [minutes]` (default 10)")
		return
	}

	id, ok := parseInt64(fields[0])
	if !ok {
		h.sendStyled(msg.Chat.ID, "Usage: `/snooze <id> [minutes]` (default 10)")
		return
	}

	minutes := 10
	if len(fields) > 1 {
		m, err := strconv.Atoi(fields[1])
		if err != nil {
			h.sendMessage(msg.Chat.ID, "Snooze minutes must be a number.")
			return
		}
		minutes = m
	}

	r, err := h.svc.Snooze(ctx, msg.From.ID, id, minutes)
	switch {
	case errors.Is(err, reminders.ErrInvalidSnooze):
		h.sendStyled(msg.Chat.ID, "❌ **Invalid Snooze Time**\nSnooze time must be greater than 0 minutes.")
	case errors.Is(err, reminders.ErrNotFound):
		h.sendStyled(msg.Chat.ID, fmt.Sprintf("❌ **Reminder Not Found**\nNo active reminder with ID `%d`. Use /reminders to see yours.", id))
	case err != nil:
		h.sendMessage(msg.Chat.ID, "Something went wrong while snoozing the reminder. Try again later.")
	default:
		h.sendStyled(msg.Chat.ID, fmt.Sprintf("💤 **Reminder Snoozed!**\nReminder `%d` snoozed for %d minutes: **%s**\nNew time: %s",
			id, minutes, r.Message, h.localized(ctx, msg.From.ID, r.ReminderTime)))
	}
}

// handleSnoozeCallback services the shortcut buttons attached to a
// delivered reminder: "snooze:<id>:<minutes>:<ownerID>".
func (h *Handlers) handleSnoozeCallback(ctx context.Context, callback *tgbotapi.CallbackQuery, parts []string) {
	if len(parts) != 4 {
		return
	}
	id, ok1 := parseInt64(parts[1])
	minutes, err := strconv.Atoi(parts[2])
	ownerID, ok2 := parseInt64(parts[3])
	if !ok1 || !ok2 || err != nil {
		return
	}

	if callback.From.ID != ownerID {
		h.answerCallbackWithAlert(callback.ID, "This button is not for you!")
		return
	}

	r, err := h.svc.Snooze(ctx, ownerID, id, minutes)
	switch {
	case errors.Is(err, reminders.ErrNotFound):
		h.answerCallbackWithAlert(callback.ID, "This reminder is no longer active.")
	case err != nil:
		h.answerCallbackWithAlert(callback.ID, "Snooze failed, try again later.")
	default:
		h.answerCallbackWithAlert(callback.ID, fmt.Sprintf("Snoozed for %d minutes, next at %s",
			minutes, r.ReminderTime.UTC().Format("15:04 UTC")))
	}
}

// handleListCallback pages and toggles the reminder list in place:
// "remlist:<ownerID>:<page>:<a|s>".
func (h *Handlers) handleListCallback(ctx context.Context, callback *tgbotapi.CallbackQuery, parts []string) {
	if len(parts) != 4 {
		return
	}
	ownerID, ok1 := parseInt64(parts[1])
	page, err := strconv.Atoi(parts[2])
	if !ok1 || err != nil {
		return
	}
	activeOnly := parts[3] == "a"

	if callback.From.ID != ownerID {
		h.answerCallbackWithAlert(callback.ID, "This button is not for you!")
		return
	}

	text, keyboard, err := h.renderReminderList(ctx, ownerID, activeOnly, page)
	if err != nil {
		h.answerCallbackWithAlert(callback.ID, "Failed to fetch reminders, try again later.")
		return
	}

	rendered := format.Render(text)
	edit := tgbotapi.NewEditMessageText(callback.Message.Chat.ID, callback.Message.MessageID, rendered.Text)
	edit.Entities = rendered.Entities
	edit.ReplyMarkup = &keyboard
	if _, err := h.api.Send(edit); err != nil {
		// Telegram rejects edits that change nothing; not worth surfacing
		return
	}
}

func (h *Handlers) renderReminderList(ctx context.Context, userID int64, activeOnly bool, page int) (string, tgbotapi.InlineKeyboardMarkup, error) {
	items, totalPages, err := h.svc.List(ctx, userID, activeOnly, page)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	if page >= totalPages && totalPages > 0 {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	var sb strings.Builder
	if activeOnly {
		sb.WriteString("**Your Active Reminders**\n\n")
	} else {
		sb.WriteString("**Your Archived Reminders**\n\n")
	}

	if len(items) == 0 {
		if activeOnly {
			sb.WriteString("You have no active reminders.")
		} else {
			sb.WriteString("You have no archived reminders.")
		}
	} else {
		for _, r := range items {
			sb.WriteString(fmt.Sprintf("`%d` **%s**\n", r.ID, r.Message))
			sb.WriteString(fmt.Sprintf("   ⏰ %s\n", r.ReminderTime.UTC().Format("2006-01-02 15:04 UTC")))
			if r.IsRecurring() {
				sb.WriteString(fmt.Sprintf("   🔄 %s at %s\n", r.Recurrence, r.RecurrenceTime))
			}
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Page %d of %d", page+1, totalPages))
	}

	return sb.String(), listKeyboard(userID, page, totalPages, activeOnly), nil
}

func listKeyboard(userID int64, page, totalPages int, activeOnly bool) tgbotapi.InlineKeyboardMarkup {
	mode := "a"
	toggleMode, toggleLabel := "s", "📁 Show Archived"
	if !activeOnly {
		mode = "s"
		toggleMode, toggleLabel = "a", "✅ Show Active"
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Previous",
			fmt.Sprintf("remlist:%d:%d:%s", userID, page-1, mode)))
	}
	if page < totalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️ Next",
			fmt.Sprintf("remlist:%d:%d:%s", userID, page+1, mode)))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData(toggleLabel, fmt.Sprintf("remlist:%d:0:%s", userID, toggleMode))},
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// localized renders a UTC timestamp in the user's preferred offset.
func (h *Handlers) localized(ctx context.Context, userID int64, t time.Time) string {
	offset, err := h.repos.Prefs.UserOffset(ctx, userID)
	if err != nil {
		offset = ""
	}
	return timezone.Localize(t, offset).Format("2006-01-02 15:04 MST")
}
