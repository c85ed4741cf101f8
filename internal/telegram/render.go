package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/skaterent/rentbot/internal/wizard"
)

// Render converts a wizard response into Bot API requests in sending order.
// messageID is the message a callback came from, or 0 for text events.
func Render(chatID int64, messageID int, resp wizard.Response) []tgbotapi.Chattable {
	var out []tgbotapi.Chattable

	if resp.Text != "" {
		if resp.EditPrevious && messageID != 0 {
			if resp.Keyboard != nil && resp.Keyboard.Kind == wizard.InlineKeyboard {
				out = append(out, tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, resp.Text, inlineMarkup(resp.Keyboard)))
			} else {
				out = append(out, tgbotapi.NewEditMessageText(chatID, messageID, resp.Text))
			}
		} else {
			msg := tgbotapi.NewMessage(chatID, resp.Text)
			if resp.Keyboard != nil {
				msg.ReplyMarkup = markup(resp.Keyboard)
			}
			out = append(out, msg)
		}
	}

	for _, a := range resp.Attachments {
		file := tgbotapi.FileBytes{Name: a.Name, Bytes: a.Data}
		switch a.Kind {
		case wizard.PhotoAttachment:
			photo := tgbotapi.NewPhoto(chatID, file)
			photo.Caption = a.Caption
			out = append(out, photo)
		default:
			doc := tgbotapi.NewDocument(chatID, file)
			doc.Caption = a.Caption
			out = append(out, doc)
		}
	}
	return out
}

func markup(kb *wizard.Keyboard) interface{} {
	if kb.Kind == wizard.InlineKeyboard {
		return inlineMarkup(kb)
	}
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(b.Text))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
	}
	reply := tgbotapi.NewReplyKeyboard(rows...)
	reply.ResizeKeyboard = true
	return reply
}

func inlineMarkup(kb *wizard.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
