package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeops/genkabot/server/service/report"
)

func messageUpdate(message *tgbotapi.Message) tgbotapi.Update {
	return tgbotapi.Update{Message: message}
}

func testUser() *tgbotapi.User {
	return &tgbotapi.User{ID: 7, UserName: "cleaner", FirstName: "Иван", LastName: "Иванов"}
}

func TestEventFromUpdateText(t *testing.T) {
	update := messageUpdate(&tgbotapi.Message{
		From: testUser(),
		Text: "Кофейня №1 (Рахлина, 5)",
	})

	event, ok := eventFromUpdate(update)
	require.True(t, ok)

	text, ok := event.(report.TextEvent)
	require.True(t, ok)
	assert.Equal(t, int64(7), text.UserID)
	assert.Equal(t, "cleaner", text.Username)
	assert.Equal(t, "Иван Иванов", text.FullName)
	assert.Equal(t, "Кофейня №1 (Рахлина, 5)", text.Text)
}

func TestEventFromUpdateCommands(t *testing.T) {
	for _, command := range []string{"/start", "/cancel"} {
		update := messageUpdate(&tgbotapi.Message{
			From: testUser(),
			Text: command,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(command)},
			},
		})

		event, ok := eventFromUpdate(update)
		require.True(t, ok, command)

		reset, ok := event.(report.ResetCommand)
		require.True(t, ok, command)
		assert.Equal(t, int64(7), reset.UserID)
	}
}

func TestEventFromUpdateUnknownCommandDropped(t *testing.T) {
	update := messageUpdate(&tgbotapi.Message{
		From: testUser(),
		Text: "/help",
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: 5},
		},
	})

	_, ok := eventFromUpdate(update)
	assert.False(t, ok)
}

func TestEventFromUpdatePhotoUsesLargestSize(t *testing.T) {
	update := messageUpdate(&tgbotapi.Message{
		From: testUser(),
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", Width: 90, Height: 67},
			{FileID: "medium", Width: 320, Height: 240},
			{FileID: "large", Width: 1280, Height: 960},
		},
	})

	event, ok := eventFromUpdate(update)
	require.True(t, ok)

	evidence, ok := event.(report.EvidenceEvent)
	require.True(t, ok)
	assert.Equal(t, "large", evidence.EvidenceRef)
	assert.Equal(t, 1280, evidence.Width)
	assert.Equal(t, 960, evidence.Height)
}

func TestEventFromUpdateNonMessageDropped(t *testing.T) {
	_, ok := eventFromUpdate(tgbotapi.Update{})
	assert.False(t, ok)

	// A sticker or other content type carries neither text nor photo.
	update := messageUpdate(&tgbotapi.Message{From: testUser()})
	_, ok = eventFromUpdate(update)
	assert.False(t, ok)
}

func TestSelectionKeyboardOneSitePerRow(t *testing.T) {
	keyboard := selectionKeyboard([]string{"A", "B", "C"})

	require.Len(t, keyboard.Keyboard, 3)
	for i, name := range []string{"A", "B", "C"} {
		require.Len(t, keyboard.Keyboard[i], 1)
		assert.Equal(t, name, keyboard.Keyboard[i][0].Text)
	}
	assert.True(t, keyboard.ResizeKeyboard)
	assert.True(t, keyboard.OneTimeKeyboard)
}

func TestAckKeyboard(t *testing.T) {
	keyboard := ackKeyboard()
	require.Len(t, keyboard.Keyboard, 1)
	require.Len(t, keyboard.Keyboard[0], 1)
	assert.Equal(t, report.AckPhrase, keyboard.Keyboard[0][0].Text)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Иван Иванов", fullName(testUser()))
	assert.Equal(t, "Иван", fullName(&tgbotapi.User{FirstName: "Иван"}))
}
