package discord

import (
	"upvote-bot/internal/threads"

	"github.com/disgoorg/disgo/bot"
	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// RestClient adapts the disgo REST surface to the narrow threads.Client port.
type RestClient struct {
	client bot.Client
}

var _ threads.Client = (*RestClient)(nil)

func NewRestClient(client bot.Client) *RestClient {
	return &RestClient{client: client}
}

func (c *RestClient) ChannelType(channelID snowflake.ID) (disgodiscord.ChannelType, error) {
	channel, err := c.client.Rest().GetChannel(channelID)
	if err != nil {
		return 0, err
	}
	return channel.Type(), nil
}

func (c *RestClient) AddReaction(channelID snowflake.ID, messageID snowflake.ID, emoji string) error {
	return c.client.Rest().AddReaction(channelID, messageID, emoji)
}
