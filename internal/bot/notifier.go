package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/beyabay/jubjub-bot/internal/format"
	"github.com/beyabay/jubjub-bot/internal/models"
)

// Notifier delivers reminder notifications over the Telegram API,
// attaching the snooze shortcut buttons. It is the scheduler's delivery
// boundary; retry policy stays with the scheduler.
type Notifier struct {
	api *tgbotapi.BotAPI
}

func NewNotifier(api *tgbotapi.BotAPI) *Notifier {
	return &Notifier{api: api}
}

// DeliverDirect sends the reminder to the requesting user. For private
// chats the chat id is the user id.
func (n *Notifier) DeliverDirect(userID int64, r *models.Reminder) error {
	return n.deliver(userID, r)
}

// DeliverToChannel sends the reminder to the chat it was set from.
func (n *Notifier) DeliverToChannel(channelID int64, r *models.Reminder) error {
	if channelID == r.UserID {
		// set from a private chat; the direct delivery already covered it
		return nil
	}
	return n.deliver(channelID, r)
}

func (n *Notifier) deliver(chatID int64, r *models.Reminder) error {
	text := fmt.Sprintf("⏰ **Reminder!**\n\n%s\n\n**Set On**: %s",
		r.Message, r.SetTime.UTC().Format("2006-01-02 15:04:05 UTC"))
	if r.IsRecurring() {
		text += fmt.Sprintf("\n**Recurrence**: %s at %s", r.Recurrence, r.RecurrenceTime)
	}

	rendered := format.Render(text)
	msg := tgbotapi.NewMessage(chatID, rendered.Text)
	msg.Entities = rendered.Entities
	msg.ReplyMarkup = snoozeKeyboard(r)

	_, err := n.api.Send(msg)
	return err
}

// snoozeKeyboard builds the 5/10/30 minute shortcut row. The callback
// carries the owner id so only the requesting user can press them.
func snoozeKeyboard(r *models.Reminder) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, 3)
	for _, minutes := range []int{5, 10, 30} {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("💤 %dm", minutes),
			fmt.Sprintf("snooze:%d:%d:%d", r.ID, minutes, r.UserID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}
