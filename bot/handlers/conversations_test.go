package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	"filegate/core/telegram/state"
	"filegate/service/access"
	"filegate/service/bundles"
	"filegate/service/codes"
	"filegate/storage"
)

// fakeContext records outbound traffic. Methods the handlers never touch
// fall through to the embedded nil interface and panic loudly.
type fakeContext struct {
	tele.Context

	sender   *tele.User
	message  *tele.Message
	callback *tele.Callback
	values   map[string]interface{}

	sent   []interface{}
	edited []interface{}
	alerts []*tele.CallbackResponse
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		values: map[string]interface{}{},
	}
}

func textContext(userID int64, text string) *fakeContext {
	c := newFakeContext(userID)
	c.message = &tele.Message{Text: text}
	return c
}

func callbackContext(userID int64) *fakeContext {
	c := newFakeContext(userID)
	c.callback = &tele.Callback{}
	return c
}

func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Chat() *tele.Chat { return &tele.Chat{ID: f.sender.ID} }
func (f *fakeContext) Message() *tele.Message { return f.message }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }
func (f *fakeContext) Update() tele.Update { return tele.Update{} }

func (f *fakeContext) Text() string {
	if f.message == nil {
		return ""
	}
	return f.message.Text
}

func (f *fakeContext) Get(key string) interface{} { return f.values[key] }
func (f *fakeContext) Set(key string, val interface{}) { f.values[key] = val }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) EditOrSend(what interface{}, _ ...interface{}) error {
	f.edited = append(f.edited, what)
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	f.alerts = append(f.alerts, resp...)
	return nil
}

// lastText returns the most recent outbound text, sent or edited.
func (f *fakeContext) lastText() string {
	if n := len(f.sent); n > 0 {
		if s, ok := f.sent[n-1].(string); ok {
			return s
		}
	}
	if n := len(f.edited); n > 0 {
		if s, ok := f.edited[n-1].(string); ok {
			return s
		}
	}
	return ""
}

type createdBundle struct {
	code    string
	adminID int64
	items   []storage.ItemDraft
}

// fakeRepo satisfies Store in memory.
type fakeRepo struct {
	bundles map[string]*storage.Bundle
	items   map[int64][]storage.BundleItem
	created []createdBundle
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bundles: map[string]*storage.Bundle{},
		items:   map[int64][]storage.BundleItem{},
	}
}

func (r *fakeRepo) CreateBundleWithItems(_ context.Context, code string, adminID int64, _ string, items []storage.ItemDraft) (int64, error) {
	r.nextID++
	r.created = append(r.created, createdBundle{code: code, adminID: adminID, items: items})
	return r.nextID, nil
}

func (r *fakeRepo) BundleByCode(_ context.Context, code string) (*storage.Bundle, error) {
	b, ok := r.bundles[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (r *fakeRepo) ItemsByBundle(_ context.Context, bundleID int64) ([]storage.BundleItem, error) {
	return r.items[bundleID], nil
}

func (r *fakeRepo) BundlesWithCounts(context.Context) ([]storage.BundleWithCount, error) {
	return nil, nil
}
func (r *fakeRepo) DeleteBundle(context.Context, int64) error { return nil }
func (r *fakeRepo) ActiveChannels(context.Context) ([]storage.Channel, error) {
	return nil, nil
}
func (r *fakeRepo) UpsertChannel(_ context.Context, _ int64, _, _ string, _ int64) error {
	return nil
}
func (r *fakeRepo) ChannelByChatID(context.Context, int64) (*storage.Channel, error) {
	return nil, storage.ErrNotFound
}
func (r *fakeRepo) DeleteChannel(context.Context, int64) error { return nil }
func (r *fakeRepo) UserByTelegramID(context.Context, int64) (*storage.User, error) {
	return nil, storage.ErrNotFound
}
func (r *fakeRepo) UserByUsername(context.Context, string) (*storage.User, error) {
	return nil, storage.ErrNotFound
}
func (r *fakeRepo) AddToWhitelist(context.Context, int64, int64) (bool, error) { return false, nil }
func (r *fakeRepo) RemoveFromWhitelist(context.Context, int64) (bool, error) { return false, nil }
func (r *fakeRepo) Whitelist(context.Context) ([]storage.WhitelistedUser, error) {
	return nil, nil
}
func (r *fakeRepo) CountUsers(context.Context) (int64, error) { return 0, nil }
func (r *fakeRepo) CountBundles(context.Context) (int64, error) { return 0, nil }
func (r *fakeRepo) CountItems(context.Context) (int64, error) { return 0, nil }
func (r *fakeRepo) CountActiveChannels(context.Context) (int64, error) { return 0, nil }
func (r *fakeRepo) CountWhitelist(context.Context) (int64, error) { return 0, nil }

const testAdminID int64 = 7

func newTestHandlers(repo *fakeRepo) *Handlers {
	return &Handlers{
		repo:    repo,
		access:  access.New([]int64{testAdminID}, nil),
		states:  state.NewMemoryManager(),
		creator: bundles.NewCreator(repo),
	}
}

func TestUploadOnePhotoThenDoneCreatesOneBundle(t *testing.T) {
	repo := newFakeRepo()
	h := newTestHandlers(repo)

	require.NoError(t, h.AskFiles(callbackContext(testAdminID)))
	assert.Equal(t, StateAwaitingFiles, h.states.GetState(testAdminID))

	photo := newFakeContext(testAdminID)
	photo.message = &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "ph-1"}}}
	require.NoError(t, h.HandleFiles(photo))

	require.NoError(t, h.HandleFiles(textContext(testAdminID, "/done")))

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.True(t, codes.Validate(created.code))
	assert.Equal(t, testAdminID, created.adminID)
	require.Len(t, created.items, 1)
	assert.Equal(t, storage.KindPhoto, created.items[0].Kind)
	assert.Equal(t, "ph-1", created.items[0].FileID)
	assert.False(t, h.states.InProgress(testAdminID))
}

func TestDoneWithoutFilesCreatesNothing(t *testing.T) {
	repo := newFakeRepo()
	h := newTestHandlers(repo)

	require.NoError(t, h.AskFiles(callbackContext(testAdminID)))

	done := textContext(testAdminID, "/done")
	require.NoError(t, h.HandleFiles(done))

	assert.Empty(t, repo.created)
	assert.False(t, h.states.InProgress(testAdminID))
	assert.Equal(t, ui.TextNothingUploaded, done.lastText())
}

func TestUploadEntryRejectedForNonAdmin(t *testing.T) {
	h := newTestHandlers(newFakeRepo())

	c := callbackContext(42)
	require.NoError(t, h.AskFiles(c))

	require.Len(t, c.alerts, 1)
	assert.True(t, c.alerts[0].ShowAlert)
	assert.False(t, h.states.InProgress(42))
}

func TestUnknownCodeEndsConversation(t *testing.T) {
	h := newTestHandlers(newFakeRepo())
	h.states.SetState(5, StateAwaitingCode)

	c := textContext(5, "ZZZZZZZZ")
	require.NoError(t, h.HandleCode(c))

	assert.False(t, h.states.InProgress(5))
	assert.Equal(t, ui.TextCodeNotFound, c.lastText())
}

func TestMalformedCodeKeepsConversationOpen(t *testing.T) {
	h := newTestHandlers(newFakeRepo())
	h.states.SetState(5, StateAwaitingCode)

	c := textContext(5, "nope")
	require.NoError(t, h.HandleCode(c))

	assert.Equal(t, StateAwaitingCode, h.states.GetState(5))
	assert.Equal(t, ui.TextBadCodeFormat, c.lastText())
}

func TestCancelDiscardsCollectedBatch(t *testing.T) {
	h := newTestHandlers(newFakeRepo())

	require.NoError(t, h.AskFiles(callbackContext(testAdminID)))
	photo := newFakeContext(testAdminID)
	photo.message = &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "ph-1"}}}
	require.NoError(t, h.HandleFiles(photo))

	require.NoError(t, h.Cancel(callbackContext(testAdminID)))

	assert.False(t, h.states.InProgress(testAdminID))
	_, ok := h.states.GetTemp(testAdminID, tempUploads)
	assert.False(t, ok)
}

func TestStartResetsAnyConversation(t *testing.T) {
	h := newTestHandlers(newFakeRepo())
	h.states.SetState(testAdminID, StateAwaitingFiles)
	h.states.SetTemp(testAdminID, tempUploads, []storage.ItemDraft{{Kind: storage.KindPhoto}})

	c := textContext(testAdminID, "/start")
	require.NoError(t, h.Start(c))

	assert.False(t, h.states.InProgress(testAdminID))
	_, ok := h.states.GetTemp(testAdminID, tempUploads)
	assert.False(t, ok)
}

func TestRedeemSendsNoticeBeforeItems(t *testing.T) {
	repo := newFakeRepo()
	repo.bundles["ABCD2345"] = &storage.Bundle{ID: 1, Code: "ABCD2345"}
	repo.items[1] = []storage.BundleItem{
		{BundleID: 1, Kind: storage.KindPhoto, FileID: "ph-1"},
		{BundleID: 1, Kind: storage.KindDocument, FileID: "doc-1"},
	}
	h := newTestHandlers(repo)
	h.states.SetState(5, StateAwaitingCode)

	c := textContext(5, "abcd2345")
	require.NoError(t, h.HandleCode(c))

	require.Len(t, c.sent, 4)
	assert.Equal(t, ui.Delivering(2), c.sent[0])
	assert.IsType(t, &tele.Photo{}, c.sent[1])
	assert.IsType(t, &tele.Document{}, c.sent[2])
	assert.Equal(t, ui.TextAllSent, c.sent[3])
	assert.False(t, h.states.InProgress(5))
}
