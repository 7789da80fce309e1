package threads

import (
	"errors"
	"fmt"
	"testing"

	"upvote-bot/internal/bus"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

type reactionCall struct {
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Emoji     string
}

type fakeClient struct {
	channelType discord.ChannelType
	channelErr  error
	reactionErr error

	channelCalls  []snowflake.ID
	reactionCalls []reactionCall
}

func (f *fakeClient) ChannelType(channelID snowflake.ID) (discord.ChannelType, error) {
	f.channelCalls = append(f.channelCalls, channelID)
	if f.channelErr != nil {
		return 0, f.channelErr
	}
	return f.channelType, nil
}

func (f *fakeClient) AddReaction(channelID snowflake.ID, messageID snowflake.ID, emoji string) error {
	f.reactionCalls = append(f.reactionCalls, reactionCall{channelID, messageID, emoji})
	return f.reactionErr
}

func parentID(id snowflake.ID) *snowflake.ID {
	return &id
}

func TestHandleThreadCreateMissingParent(t *testing.T) {
	client := &fakeClient{}
	handler := New(client, nil, nil)

	err := handler.HandleThreadCreate(bus.ThreadCreated{ThreadID: 100})

	assert.ErrorIs(t, err, ErrNoThreadParent)
	assert.Empty(t, client.channelCalls, "no API calls for a malformed event")
	assert.Empty(t, client.reactionCalls)
}

func TestHandleThreadCreateForumPost(t *testing.T) {
	client := &fakeClient{channelType: discord.ChannelTypeGuildForum}
	handler := New(client, nil, nil)

	err := handler.HandleThreadCreate(bus.ThreadCreated{ThreadID: 100, ParentID: parentID(200)})

	assert.NoError(t, err)
	assert.Equal(t, []snowflake.ID{200}, client.channelCalls)
	assert.Equal(t, []reactionCall{{ChannelID: 100, MessageID: 100, Emoji: "⬆️"}}, client.reactionCalls,
		"reaction targets the thread's opening message, which shares the thread id")
}

func TestHandleThreadCreateNonForumParent(t *testing.T) {
	client := &fakeClient{channelType: discord.ChannelTypeGuildText}
	handler := New(client, nil, nil)

	err := handler.HandleThreadCreate(bus.ThreadCreated{ThreadID: 100, ParentID: parentID(200)})

	assert.NoError(t, err)
	assert.Empty(t, client.reactionCalls)
}

func TestHandleThreadCreateCachedForum(t *testing.T) {
	client := &fakeClient{}
	forums := NewForumCache()
	forums.Put(200, true)
	handler := New(client, forums, nil)

	err := handler.HandleThreadCreate(bus.ThreadCreated{ThreadID: 100, ParentID: parentID(200)})

	assert.NoError(t, err)
	assert.Empty(t, client.channelCalls, "cached classification answers without a fetch")
	assert.Len(t, client.reactionCalls, 1)
}

func TestHandleThreadCreateCachedNonForum(t *testing.T) {
	client := &fakeClient{}
	forums := NewForumCache()
	forums.Put(200, false)
	handler := New(client, forums, nil)

	err := handler.HandleThreadCreate(bus.ThreadCreated{ThreadID: 100, ParentID: parentID(200)})

	assert.NoError(t, err)
	assert.Empty(t, client.channelCalls)
	assert.Empty(t, client.reactionCalls)
}

func TestHandleThreadCreateChannelFetchError(t *testing.T) {
	client := &fakeClient{channelErr: errors.New("rate limited")}
	handler := New(client, nil, nil)

	err := handler.HandleThreadCreate(bus.ThreadCreated{ThreadID: 100, ParentID: parentID(200)})

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Empty(t, client.reactionCalls, "no reaction when classification failed")
}

func TestHandleThreadCreateReactionError(t *testing.T) {
	client := &fakeClient{
		channelType: discord.ChannelTypeGuildForum,
		reactionErr: errors.New("missing permissions"),
	}
	handler := New(client, nil, nil)

	err := handler.HandleThreadCreate(bus.ThreadCreated{ThreadID: 100, ParentID: parentID(200)})

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Len(t, client.reactionCalls, 1)
}

func TestHandleThreadCreateRefetchesOnEveryMiss(t *testing.T) {
	client := &fakeClient{channelType: discord.ChannelTypeGuildText}
	handler := New(client, NewForumCache(), nil)

	event := bus.ThreadCreated{ThreadID: 100, ParentID: parentID(200)}
	assert.NoError(t, handler.HandleThreadCreate(event))
	assert.NoError(t, handler.HandleThreadCreate(event))

	assert.Equal(t, []snowflake.ID{200, 200}, client.channelCalls,
		"lookups do not store what they learn, so each miss fetches again")
}

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "missing parent", err: ErrNoThreadParent, expected: "missing_parent"},
		{name: "wrapped missing parent", err: fmt.Errorf("handle: %w", ErrNoThreadParent), expected: "missing_parent"},
		{name: "api error", err: &APIError{Op: "get channel", Err: errors.New("500")}, expected: "remote_api"},
		{name: "other", err: errors.New("boom"), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Kind(tt.err))
		})
	}
}
