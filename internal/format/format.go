package format

import (
	"regexp"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Result is plain text plus the Telegram entities describing its styling.
type Result struct {
	Text     string
	Entities []tgbotapi.MessageEntity
}

var spanRe = regexp.MustCompile("\\*\\*(.+?)\\*\\*|`(.+?)`")

// Render converts the **bold** and `code` spans the handlers emit into
// plain text with message entities. Offsets and lengths are UTF-16 code
// units, which is what the Bot API counts in.
func Render(text string) Result {
	var (
		entities []tgbotapi.MessageEntity
		out      strings.Builder
		last     int
		offset   int // UTF-16 units written so far
	)

	for _, m := range spanRe.FindAllStringSubmatchIndex(text, -1) {
		out.WriteString(text[last:m[0]])
		offset += utf16Len(text[last:m[0]])

		var span, kind string
		if m[2] >= 0 {
			span, kind = text[m[2]:m[3]], "bold"
		} else {
			span, kind = text[m[4]:m[5]], "code"
		}

		entities = append(entities, tgbotapi.MessageEntity{
			Type:   kind,
			Offset: offset,
			Length: utf16Len(span),
		})
		out.WriteString(span)
		offset += utf16Len(span)
		last = m[1]
	}
	out.WriteString(text[last:])

	return Result{Text: out.String(), Entities: entities}
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
