package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaterent/rentbot/internal/wizard"
)

func TestRender_TextWithReplyKeyboard(t *testing.T) {
	out := Render(42, 0, wizard.Response{
		Text: "menu",
		Keyboard: &wizard.Keyboard{
			Kind: wizard.ReplyKeyboard,
			Rows: [][]wizard.Button{{{Text: "a"}, {Text: "b"}}, {{Text: "c"}}},
		},
	})

	require.Len(t, out, 1)
	msg, ok := out[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "menu", msg.Text)

	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard, 2)
	assert.Equal(t, "b", kb.Keyboard[0][1].Text)
}

func TestRender_InlineKeyboard(t *testing.T) {
	resp := wizard.Response{
		Text: "sizes",
		Keyboard: &wizard.Keyboard{
			Kind: wizard.InlineKeyboard,
			Rows: [][]wizard.Button{{{Text: "42", Data: "size_42"}}},
		},
	}

	msg, ok := Render(42, 0, resp)[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "size_42", *kb.InlineKeyboard[0][0].CallbackData)

	resp.EditPrevious = true
	edit, ok := Render(42, 9, resp)[0].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 9, edit.MessageID)
	require.NotNil(t, edit.ReplyMarkup)
	assert.Equal(t, "size_42", *edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
}

func TestRender_EditWithoutMessageFallsBackToSend(t *testing.T) {
	out := Render(42, 0, wizard.Response{Text: "done", EditPrevious: true})

	require.Len(t, out, 1)
	assert.IsType(t, tgbotapi.MessageConfig{}, out[0])
}

func TestRender_Attachments(t *testing.T) {
	out := Render(42, 0, wizard.Response{Attachments: []wizard.Attachment{
		{Kind: wizard.DocumentAttachment, Name: "rental_report.csv", Caption: "report", Data: []byte("csv")},
		{Kind: wizard.PhotoAttachment, Name: "popularity_chart.png", Caption: "chart", Data: []byte("png")},
	}})

	require.Len(t, out, 2)
	doc, ok := out[0].(tgbotapi.DocumentConfig)
	require.True(t, ok)
	assert.Equal(t, "report", doc.Caption)
	assert.Equal(t, tgbotapi.FileBytes{Name: "rental_report.csv", Bytes: []byte("csv")}, doc.File)

	photo, ok := out[1].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, "chart", photo.Caption)
}
