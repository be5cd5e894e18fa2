package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ewintr.nl/trending/fetch"
	"ewintr.nl/trending/storage"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr)).With(slog.String("run", uuid.NewString()))

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", err)
		os.Exit(1)
	}
	tables := storage.Tables{
		Records:  cfg.recordTable,
		Videos:   cfg.videoTable,
		Channels: cfg.channelTable,
	}

	postgres, err := storage.NewPostgres(storage.PostgresInfo{
		Host:     cfg.dbHost,
		Port:     cfg.dbPort,
		User:     cfg.dbUser,
		Password: cfg.dbPassword,
		Database: cfg.dbName,
	}, tables)
	if err != nil {
		logger.Error("unable to connect to postgres", err)
		os.Exit(1)
	}
	var trendingRepo storage.TrendingRepository = storage.NewPostgresTrendingRepository(postgres, tables)

	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(cfg.youtubeAPIKey))
	if err != nil {
		logger.Error("unable to create youtube service", err)
		os.Exit(1)
	}
	yt := fetch.NewYoutube(ytClient, logger)
	trending := fetch.NewRapidAPI(fetch.RapidAPIInfo{
		Endpoint: fetch.TrendingEndpoint,
		APIKey:   cfg.rapidAPIKey,
	}, logger)

	pipeline := fetch.NewPipeline(trending, yt, yt, logger)
	videos, channels, err := pipeline.Harvest()
	if err != nil {
		logger.Error("harvest failed", err)
		os.Exit(1)
	}

	if err := trendingRepo.SaveRecords(videos); err != nil {
		logger.Error("unable to save trending records", err)
		os.Exit(1)
	}
	logger.Info("saved trending records", slog.Int("count", len(videos)))
	if err := trendingRepo.SaveVideos(videos); err != nil {
		logger.Error("unable to save trending videos", err)
		os.Exit(1)
	}
	logger.Info("saved trending videos", slog.Int("count", len(videos)))
	if err := trendingRepo.SaveChannels(channels); err != nil {
		logger.Error("unable to save trending channels", err)
		os.Exit(1)
	}
	logger.Info("saved trending channels", slog.Int("count", len(channels)))

	logger.Info("run complete")
}

type config struct {
	dbHost        string
	dbPort        string
	dbUser        string
	dbPassword    string
	dbName        string
	recordTable   string
	videoTable    string
	channelTable  string
	youtubeAPIKey string
	rapidAPIKey   string
}

// loadConfig reads all parameters from the environment. Nothing has a
// default, every missing one is reported.
func loadConfig() (config, error) {
	missing := []string{}
	getParam := func(param string) string {
		val, ok := os.LookupEnv(param)
		if !ok || val == "" {
			missing = append(missing, param)
		}
		return val
	}

	cfg := config{
		dbHost:        getParam("POSTGRES_HOST"),
		dbPort:        getParam("POSTGRES_PORT"),
		dbUser:        getParam("POSTGRES_USER"),
		dbPassword:    getParam("POSTGRES_PASSWORD"),
		dbName:        getParam("POSTGRES_DB"),
		recordTable:   getParam("TRENDING_RECORD_TABLE"),
		videoTable:    getParam("TRENDING_VIDEO_TABLE"),
		channelTable:  getParam("TRENDING_CHANNEL_TABLE"),
		youtubeAPIKey: getParam("YOUTUBE_API_KEY"),
		rapidAPIKey:   getParam("RAPID_API_KEY"),
	}
	if len(missing) > 0 {
		return config{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
