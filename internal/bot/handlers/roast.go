package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/beyabay/jubjub-bot/internal/roast"
)

func (h *Handlers) handleRoast(ctx context.Context, msg *tgbotapi.Message) {
	// Roast the named target, or the caller when none is given.
	target := strings.TrimSpace(msg.CommandArguments())
	if target == "" {
		target = displayName(msg.From)
	}

	text, err := h.roaster.Roast(ctx, msg.From.ID, target)
	var cd *roast.CooldownError
	if errors.As(err, &cd) {
		h.sendStyled(msg.Chat.ID, fmt.Sprintf("⏳ **Slow Down, Chaos Gremlin!**\nJubJub needs a break! Wait %d seconds before roasting again.",
			int(cd.Remaining.Seconds())))
		return
	}
	if err != nil {
		h.sendMessage(msg.Chat.ID, "JubJub is speechless. Try again later.")
		return
	}

	h.sendStyled(msg.Chat.ID, "🔥 **JubJub's Roast Time!**\n"+text)
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return u.FirstName
}
