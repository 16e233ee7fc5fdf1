package subscription

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"filegate/storage"
)

type fakeChatAPI struct {
	roles map[string]tele.MemberStatus
	errs  map[string]error
	chats map[string]*tele.Chat
}

func (f *fakeChatAPI) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	key := chat.Recipient() + "/" + user.Recipient()
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	role, ok := f.roles[key]
	if !ok {
		role = tele.Member
	}
	return &tele.ChatMember{Role: role}, nil
}

func (f *fakeChatAPI) ChatByUsername(name string) (*tele.Chat, error) {
	chat, ok := f.chats[name]
	if !ok {
		return nil, errors.New("chat not found")
	}
	return chat, nil
}

func gatingChannels(ids ...int64) []storage.Channel {
	chs := make([]storage.Channel, 0, len(ids))
	for _, id := range ids {
		chs = append(chs, storage.Channel{ChatID: id})
	}
	return chs
}

func TestMissingSubscribedRoles(t *testing.T) {
	api := &fakeChatAPI{roles: map[string]tele.MemberStatus{
		"-100111/7": tele.Member,
		"-100222/7": tele.Administrator,
		"-100333/7": tele.Creator,
		"-100444/7": tele.Restricted,
	}}
	missing := Missing(context.Background(), api, 7, gatingChannels(-100111, -100222, -100333, -100444))
	assert.Empty(t, missing)
}

func TestMissingLeftAndKicked(t *testing.T) {
	api := &fakeChatAPI{roles: map[string]tele.MemberStatus{
		"-100111/7": tele.Left,
		"-100222/7": tele.Kicked,
		"-100333/7": tele.Member,
	}}
	missing := Missing(context.Background(), api, 7, gatingChannels(-100111, -100222, -100333))
	require.Len(t, missing, 2)
	assert.Equal(t, int64(-100111), missing[0].ChatID)
	assert.Equal(t, int64(-100222), missing[1].ChatID)
}

func TestMissingFailsClosedOnLookupError(t *testing.T) {
	api := &fakeChatAPI{errs: map[string]error{
		"-100111/7": errors.New("bot was kicked"),
	}}
	missing := Missing(context.Background(), api, 7, gatingChannels(-100111))
	require.Len(t, missing, 1)
}

func TestResolveRequiresBotAdminRights(t *testing.T) {
	self := &tele.User{ID: 42}
	chat := &tele.Chat{ID: -100999, Username: "mychannel", Title: "My Channel"}
	api := &fakeChatAPI{
		chats: map[string]*tele.Chat{"@mychannel": chat},
		roles: map[string]tele.MemberStatus{"-100999/42": tele.Administrator},
	}

	info, err := Resolve(context.Background(), api, self, "https://t.me/mychannel")
	require.NoError(t, err)
	assert.Equal(t, int64(-100999), info.ChatID)
	assert.Equal(t, "mychannel", info.Username)
	assert.Equal(t, "My Channel", info.Title)

	api.roles["-100999/42"] = tele.Member
	_, err = Resolve(context.Background(), api, self, "@mychannel")
	assert.ErrorIs(t, err, ErrNotResolvable)
}

func TestResolveRejectsUnusableInput(t *testing.T) {
	self := &tele.User{ID: 42}
	api := &fakeChatAPI{}

	_, err := Resolve(context.Background(), api, self, "not a channel")
	assert.ErrorIs(t, err, ErrNotResolvable)

	_, err = Resolve(context.Background(), api, self, "@unknownchan")
	assert.ErrorIs(t, err, ErrNotResolvable)
}
