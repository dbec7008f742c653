package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/beyabay/jubjub-bot/internal/models"
	"github.com/beyabay/jubjub-bot/internal/repository"
)

func (h *Handlers) handleGif(ctx context.Context, msg *tgbotapi.Message) {
	name := strings.TrimSpace(msg.CommandArguments())
	if name == "" {
		h.sendStyled(msg.Chat.ID, "Usage: `/gif <name>`")
		return
	}

	gif, err := h.repos.Gifs.GifByName(ctx, name)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to look that GIF up, try again later.")
		return
	}
	if gif == nil {
		h.sendMessage(msg.Chat.ID, "GIF not found!")
		return
	}

	h.sendMessage(msg.Chat.ID, gif.Link)
}

func (h *Handlers) handleGifAdd(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From.ID != h.ownerID {
		h.sendMessage(msg.Chat.ID, "You do not have permission to use this command.")
		return
	}

	fields := strings.Fields(msg.CommandArguments())
	if len(fields) < 2 {
		h.sendStyled(msg.Chat.ID, "Usage: `/gifadd <name> <link> [category]`")
		return
	}

	gif := &models.Gif{Name: fields[0], Link: fields[1], Category: "general"}
	if len(fields) > 2 {
		gif.Category = fields[2]
	}

	err := h.repos.Gifs.CreateGif(ctx, gif)
	switch {
	case errors.Is(err, repository.ErrGifExists):
		h.sendStyled(msg.Chat.ID, fmt.Sprintf("A GIF named `%s` already exists.", gif.Name))
	case err != nil:
		h.sendMessage(msg.Chat.ID, "Failed to add the GIF, try again later.")
	default:
		h.sendStyled(msg.Chat.ID, fmt.Sprintf("GIF `%s` added successfully!", gif.Name))
	}
}
