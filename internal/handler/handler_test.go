package handler

import (
	"testing"

	"spoilerbot/internal/domain"
	"spoilerbot/internal/registry"
	"spoilerbot/internal/repository/memory"
	"spoilerbot/internal/service"
	"spoilerbot/internal/testutil"

	tele "gopkg.in/telebot.v3"
)

const (
	testUserID      int64 = 123
	testBotUsername       = "spoiler_bot"
)

// fakeContext records what a handler answers
type fakeContext struct {
	tele.Context

	chat     *tele.Chat
	sender   *tele.User
	message  *tele.Message
	callback *tele.Callback
	query    *tele.Query

	sent      []interface{}
	sentOpts  [][]interface{}
	responses []*tele.CallbackResponse
	answer    *tele.QueryResponse
}

func (f *fakeContext) Chat() *tele.Chat         { return f.chat }
func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Message() *tele.Message   { return f.message }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }
func (f *fakeContext) Query() *tele.Query       { return f.query }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	f.sentOpts = append(f.sentOpts, opts)
	return nil
}

func (f *fakeContext) Reply(what interface{}, opts ...interface{}) error {
	return f.Send(what, opts...)
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		f.responses = append(f.responses, &tele.CallbackResponse{})
		return nil
	}
	f.responses = append(f.responses, resp[0])
	return nil
}

func (f *fakeContext) Answer(resp *tele.QueryResponse) error {
	f.answer = resp
	return nil
}

func (f *fakeContext) lastSent() interface{} {
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeContext) lastResponse() *tele.CallbackResponse {
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

func privateMessage(m *tele.Message) *fakeContext {
	user := testutil.NewTestUser(testUserID)
	chat := &tele.Chat{ID: testUserID, Type: tele.ChatPrivate}
	m.Sender = user
	m.Chat = chat
	return &fakeContext{chat: chat, sender: user, message: m}
}

func groupMessage(m *tele.Message) *fakeContext {
	user := testutil.NewTestUser(testUserID)
	chat := &tele.Chat{ID: -100, Type: tele.ChatGroup}
	m.Sender = user
	m.Chat = chat
	return &fakeContext{chat: chat, sender: user, message: m}
}

func callbackContext(data string) *fakeContext {
	return &fakeContext{
		sender:   testutil.NewTestUser(testUserID),
		callback: &tele.Callback{ID: "cb", Data: data},
	}
}

func queryContext(text string) *fakeContext {
	user := testutil.NewTestUser(testUserID)
	return &fakeContext{
		sender: user,
		query:  &tele.Query{ID: "q", Sender: user, Text: text},
	}
}

type testHandler struct {
	*Handler
	registry *registry.Registry
	sender   *testutil.MockSender
	stats    *memory.StatsRepo
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()

	logger := testutil.NewTestLogger()
	reg := registry.New(logger, domain.DefaultExpiry)
	repo := memory.NewStatsRepo()
	stats := service.NewStatsService(repo, logger)
	sender := new(testutil.MockSender)

	h := &Handler{
		sender:         sender,
		spoilerService: service.NewSpoilerService(reg, stats, logger),
		statsService:   stats,
		logger:         logger,
		botUsername:    testBotUsername,
	}

	return &testHandler{Handler: h, registry: reg, sender: sender, stats: repo}
}
