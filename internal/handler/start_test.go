package handler

import (
	"strings"
	"testing"

	"spoilerbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestHandleStart(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
		creating bool
	}{
		{name: "no payload", payload: "", expected: msgPreparingASpoiler, creating: true},
		{name: "from switch pm", payload: CreateCustomSpoiler, expected: msgPreparingASpoiler, creating: true},
		{name: "unknown spoiler", payload: InlineQuerySeparator + "missing", expected: msgSpoilerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler(t)
			c := privateMessage(&tele.Message{Text: "/start " + tt.payload, Payload: tt.payload})

			require.NoError(t, th.handleStart(c))

			assert.Equal(t, tt.expected, c.lastSent())
			assert.Equal(t, tt.creating, th.spoilerService.IsAwaitingContent(testUserID))
		})
	}
}

func TestHandleStart_Group(t *testing.T) {
	th := newTestHandler(t)
	c := groupMessage(&tele.Message{Text: "/start"})

	require.NoError(t, th.handleStart(c))

	assert.Equal(t, helpText(testBotUsername), c.lastSent())
	assert.False(t, th.spoilerService.IsAwaitingContent(testUserID))
}

func TestHandleStart_DeepLink(t *testing.T) {
	th := newTestHandler(t)
	spoiler := th.registry.Store("-", domain.Text{Value: strings.Repeat("long ", 50)}, nil)
	c := privateMessage(&tele.Message{Payload: InlineQuerySeparator + spoiler.ID})

	th.sender.On("Send", c.sender, strings.Repeat("long ", 50)).Return(&tele.Message{}, nil).Once()

	require.NoError(t, th.handleStart(c))

	th.sender.AssertExpectations(t)
	assert.Empty(t, c.sent)
}

func TestDialog(t *testing.T) {
	th := newTestHandler(t)

	// idle users are ignored
	c := privateMessage(&tele.Message{Text: "hello"})
	require.NoError(t, th.handleMessage(c))
	assert.Empty(t, c.sent)

	c = privateMessage(&tele.Message{Payload: ""})
	require.NoError(t, th.handleStart(c))

	c = privateMessage(&tele.Message{Poll: &tele.Poll{Question: "?"}})
	require.NoError(t, th.handleMessage(c))
	assert.Equal(t, msgUnsupported, c.lastSent())
	assert.True(t, th.spoilerService.IsAwaitingContent(testUserID))

	c = privateMessage(&tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "photo"}}})
	require.NoError(t, th.handleMessage(c))
	assert.Equal(t, msgNowSendATitle, c.lastSent())

	// media while a title is expected
	c = privateMessage(&tele.Message{Sticker: &tele.Sticker{File: tele.File{FileID: "s"}}})
	require.NoError(t, th.handleMessage(c))
	assert.Equal(t, msgNowSendATitle, c.lastSent())

	c = privateMessage(&tele.Message{Text: strings.Repeat("t", domain.MaxTitleLength+1)})
	require.NoError(t, th.handleMessage(c))
	assert.Equal(t, msgTitleTooLong, c.lastSent())

	c = privateMessage(&tele.Message{Text: "Holiday/3d"})
	require.NoError(t, th.handleMessage(c))
	assert.Equal(t, msgSpoilerReady, c.lastSent())

	require.Len(t, c.sentOpts[0], 1)
	markup, ok := c.sentOpts[0][0].(*tele.ReplyMarkup)
	require.True(t, ok)

	query := markup.InlineKeyboard[0][0].InlineQuery
	require.True(t, strings.HasPrefix(query, InlineQuerySeparator))

	spoiler, found := th.registry.Lookup(strings.TrimPrefix(query, InlineQuerySeparator))
	require.True(t, found)
	assert.Equal(t, "Holiday", spoiler.TitleOrEmpty())
	assert.Equal(t, domain.Photo{FileIDs: []string{"photo"}}, spoiler.Content)

	assert.False(t, th.spoilerService.IsAwaitingTitle(testUserID))
}

func commandEntity(length int) tele.Entities {
	return tele.Entities{{Type: tele.EntityCommand, Offset: 0, Length: length}}
}

func TestHandleMessage_UnknownCommand(t *testing.T) {
	th := newTestHandler(t)

	// idle users get no answer
	c := privateMessage(&tele.Message{Text: "/unknown", Entities: commandEntity(8)})
	require.NoError(t, th.handleMessage(c))
	assert.Empty(t, c.sent)

	th.spoilerService.StartCreation(testUserID)

	c = privateMessage(&tele.Message{Text: "/unknown", Entities: commandEntity(8)})
	require.NoError(t, th.handleMessage(c))

	assert.Equal(t, msgUnknownCommand, c.lastSent())
	assert.True(t, th.spoilerService.IsAwaitingContent(testUserID))
}

func TestHandleMessage_SlashTextIsContent(t *testing.T) {
	th := newTestHandler(t)
	th.spoilerService.StartCreation(testUserID)

	// Telegram marks only "/r" as a command here
	c := privateMessage(&tele.Message{Text: "/r/golang", Entities: commandEntity(2)})
	require.NoError(t, th.handleMessage(c))
	assert.Equal(t, msgNowSendATitle, c.lastSent())
	require.True(t, th.spoilerService.IsAwaitingTitle(testUserID))

	c = privateMessage(&tele.Message{Text: "-/5m"})
	require.NoError(t, th.handleMessage(c))
	assert.Equal(t, msgSpoilerReady, c.lastSent())

	opts := c.sentOpts[len(c.sentOpts)-1]
	require.Len(t, opts, 1)
	markup, ok := opts[0].(*tele.ReplyMarkup)
	require.True(t, ok)
	id := strings.TrimPrefix(markup.InlineKeyboard[0][0].InlineQuery, InlineQuerySeparator)

	spoiler, ok := th.registry.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, domain.Text{Value: "/r/golang"}, spoiler.Content)
	assert.Nil(t, spoiler.Title)
}

func TestIsBotCommand(t *testing.T) {
	tests := []struct {
		name     string
		message  *tele.Message
		expected bool
	}{
		{
			name:     "command",
			message:  &tele.Message{Text: "/stop", Entities: commandEntity(5)},
			expected: true,
		},
		{
			name:     "command with argument",
			message:  &tele.Message{Text: "/stop now", Entities: commandEntity(5)},
			expected: true,
		},
		{
			name:     "path",
			message:  &tele.Message{Text: "/r/golang", Entities: commandEntity(2)},
			expected: false,
		},
		{
			name:     "slash without entity",
			message:  &tele.Message{Text: "/5m"},
			expected: false,
		},
		{
			name: "command not at start",
			message: &tele.Message{
				Text:     "see /help",
				Entities: tele.Entities{{Type: tele.EntityCommand, Offset: 4, Length: 5}},
			},
			expected: false,
		},
		{
			name:     "media",
			message:  &tele.Message{Photo: &tele.Photo{}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isBotCommand(tt.message))
		})
	}
}

func TestHandleCancel(t *testing.T) {
	th := newTestHandler(t)

	c := privateMessage(&tele.Message{Text: "/cancel"})
	require.NoError(t, th.handleCancel(c))
	assert.Equal(t, msgNothingToCancel, c.lastSent())

	th.spoilerService.StartCreation(testUserID)
	require.NoError(t, th.handleCancel(c))
	assert.Equal(t, msgCreationCancelled, c.lastSent())
	assert.False(t, th.spoilerService.IsAwaitingContent(testUserID))
}

func TestHandleSpoilerAndHelp(t *testing.T) {
	th := newTestHandler(t)
	c := privateMessage(&tele.Message{Text: "/spoiler"})

	require.NoError(t, th.handleSpoiler(c))
	assert.Equal(t, msgTypeStart, c.lastSent())

	require.NoError(t, th.handleHelp(c))
	help, ok := c.lastSent().(string)
	require.True(t, ok)
	assert.Contains(t, help, "@spoiler_bot title for the spoiler:::contents of the spoiler")
}

func TestHandleStats(t *testing.T) {
	th := newTestHandler(t)
	th.registry.Store("-", domain.RawString{Value: "x"}, nil)
	_, err := th.spoilerService.QuickSpoiler(testUserID, "quick")
	require.NoError(t, err)

	c := privateMessage(&tele.Message{Text: "/stats"})
	require.NoError(t, th.handleStats(c))

	assert.Equal(t, "📊 Today\n\nCreated: 1\nRevealed: 0\nExpired: 0", c.lastSent())
}
