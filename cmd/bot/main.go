package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"upvote-bot/internal/bus"
	"upvote-bot/internal/config"
	discordbridge "upvote-bot/internal/discord"
	"upvote-bot/internal/loop"
	"upvote-bot/internal/metrics"
	"upvote-bot/internal/shutdown"
	"upvote-bot/internal/threads"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	Version = "dev"
	Commit  = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "upvote-bot",
	Short:   "Adds an upvote reaction to every new forum post",
	Version: Version,
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd.Context())
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("upvote-bot %s (%s)\n", Version, Commit))
	rootCmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to the config file")
	rootCmd.SilenceUsage = true
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(parent context.Context) {
	cfg, err := readConfig(slog.Default())
	if err != nil {
		if !errors.Is(err, errConfigCreated) {
			slog.Error("config load failed", slog.Any("err", err))
		}
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	token := strings.TrimSpace(cfg.Discord.Token)
	if token == "" {
		logger.Error("discord token missing from config and DISCORD_TOKEN environment")
		os.Exit(1)
	}

	eventBus := bus.New(bus.DefaultBuffer)

	botConfig := discordbridge.DefaultConfig()
	botConfig.Token = token

	discordBot, err := discordbridge.New(botConfig, eventBus, logger)
	if err != nil {
		logger.Error("failed to create discord client", slog.Any("err", err))
		os.Exit(1)
	}

	forums := threads.NewForumCache()
	seedForumCache(forums, cfg.Discord.ForumChannels, logger)

	handler := threads.New(discordbridge.NewRestClient(discordBot.Client()), forums, logger)

	ctx, cancel := shutdown.Context(parent, logger)
	defer cancel()

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	if err := discordBot.Start(ctx); err != nil {
		logger.Error("failed to open gateway", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("gateway open, watching for new threads")

	loop.New(discordBot, handler, logger).Run(ctx)
}

var errConfigCreated = errors.New("config.yaml created")

func readConfig(logger *slog.Logger) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}

		if logger == nil {
			logger = slog.Default()
		}
		if err := createConfigFromExample(configPath); err != nil {
			return cfg, err
		}

		logger.Info("created " + configPath + " from embedded config.example.yaml")
		logger.Info("fill in discord.token (or set DISCORD_TOKEN) and restart")
		return cfg, errConfigCreated
	}
	return cfg, nil
}

func createConfigFromExample(destination string) error {
	if len(config.DefaultConfigYAML) == 0 {
		return errors.New("embedded config template missing")
	}
	return os.WriteFile(destination, config.DefaultConfigYAML, 0644)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func seedForumCache(forums *threads.ForumCache, ids []string, logger *slog.Logger) {
	for _, raw := range ids {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := snowflake.Parse(raw)
		if err != nil {
			logger.Warn("ignoring invalid forum channel id", slog.String("id", raw), slog.Any("err", err))
			continue
		}
		forums.Put(id, true)
	}
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger.Info("serving metrics", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server exited", slog.Any("err", err))
	}
}
