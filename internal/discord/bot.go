package discord

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"upvote-bot/internal/bus"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
)

type Config struct {
	Token   string
	Intents gateway.Intents
}

func DefaultConfig() Config {
	return Config{
		// Thread lifecycle events arrive with the guilds intent alone.
		Intents: gateway.IntentGuilds,
	}
}

// Bot owns the gateway connection and republishes thread-create events onto
// the bus in gateway order.
type Bot struct {
	client bot.Client
	bus    *bus.Bus
	logger *slog.Logger
}

func New(cfg Config, eventBus *bus.Bus, logger *slog.Logger) (*Bot, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("discord token is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Intents == 0 {
		cfg.Intents = DefaultConfig().Intents
	}

	b := &Bot{
		bus:    eventBus,
		logger: logger,
	}

	client, err := disgo.New(cfg.Token,
		bot.WithLogger(logger),
		bot.WithGatewayConfigOpts(gateway.WithIntents(cfg.Intents)),
		bot.WithEventListenerFunc(func(event *events.ThreadCreate) {
			b.onThreadCreate(event.Thread)
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client
	return b, nil
}

func (b *Bot) onThreadCreate(thread disgodiscord.GuildThread) {
	if b.bus == nil {
		return
	}

	// ParentID stays a pointer; a nil parent is an anomaly the handler
	// reports rather than skips.
	b.bus.GatewayEvents <- bus.ThreadCreated{
		ThreadID: thread.ID(),
		ParentID: thread.ParentID(),
	}
}

func (b *Bot) Start(ctx context.Context) error {
	return b.client.OpenGateway(ctx)
}

// Events exposes the bus channel the event loop consumes.
func (b *Bot) Events() <-chan bus.GatewayEvent {
	return b.bus.GatewayEvents
}

// Close sends the close handshake to the gateway. disgo does not report close
// failures, so the error is always nil.
func (b *Bot) Close(ctx context.Context) error {
	b.client.Close(ctx)
	return nil
}

func (b *Bot) Client() bot.Client {
	return b.client
}
