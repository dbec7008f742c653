package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/beyabay/jubjub-bot/internal/models"
	"github.com/beyabay/jubjub-bot/internal/timezone"
)

func (h *Handlers) handlePing(ctx context.Context, msg *tgbotapi.Message) {
	start := time.Now()
	_, apiErr := h.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping))
	apiLatency := time.Since(start)

	start = time.Now()
	dbErr := h.db.Pool.Ping(ctx)
	dbLatency := time.Since(start)

	text := "🏓 **Pong!**\n"
	if apiErr == nil {
		text += fmt.Sprintf("Telegram: **%dms**\n", apiLatency.Milliseconds())
	} else {
		text += "Telegram: unreachable\n"
	}
	if dbErr == nil {
		text += fmt.Sprintf("Database: **%dms**", dbLatency.Milliseconds())
	} else {
		text += "Database: unreachable"
	}

	h.sendStyled(msg.Chat.ID, text)
}

func (h *Handlers) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	global, err := h.repos.Usage.GlobalStats(ctx)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to fetch stats, try again later.")
		return
	}
	user, err := h.repos.Usage.UserStats(ctx, msg.From.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to fetch stats, try again later.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 **JubJub's Stats!**\n\n")
	sb.WriteString(fmt.Sprintf("**Global Usage**: %d commands\n", global.Total))
	sb.WriteString(breakdown(global))
	if user.Total == 0 {
		sb.WriteString("\nYou haven't used any commands yet!")
	} else {
		sb.WriteString(fmt.Sprintf("\n**Your Usage**: %d commands\n", user.Total))
		sb.WriteString(breakdown(user))
	}

	h.sendStyled(msg.Chat.ID, sb.String())
}

func breakdown(stats *models.UsageStats) string {
	names := make([]string, 0, len(stats.ByCommand))
	for name := range stats.ByCommand {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  /%s: %d\n", name, stats.ByCommand[name]))
	}
	return sb.String()
}

func (h *Handlers) handleSetTimezone(ctx context.Context, msg *tgbotapi.Message) {
	offset := strings.TrimSpace(msg.CommandArguments())
	if _, err := timezone.ParseOffset(offset); err != nil || offset == "" {
		h.sendStyled(msg.Chat.ID, "Usage: `/settimezone <±HH:MM>`, e.g. `/settimezone +05:30`")
		return
	}

	if err := h.repos.Prefs.SetOffset(ctx, msg.From.ID, offset); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to save your timezone, try again later.")
		return
	}
	h.sendStyled(msg.Chat.ID, fmt.Sprintf("Timezone set to **UTC%s**. Reminder times will be shown in it.", offset))
}
