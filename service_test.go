package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configParams = map[string]string{
	"POSTGRES_HOST":          "localhost",
	"POSTGRES_PORT":          "5432",
	"POSTGRES_USER":          "trending",
	"POSTGRES_PASSWORD":      "secret",
	"POSTGRES_DB":            "trending",
	"TRENDING_RECORD_TABLE":  "trending_record",
	"TRENDING_VIDEO_TABLE":   "trending_video",
	"TRENDING_CHANNEL_TABLE": "trending_channel",
	"YOUTUBE_API_KEY":        "yt-key",
	"RAPID_API_KEY":          "rapid-key",
}

func TestLoadConfig(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		for param, val := range configParams {
			t.Setenv(param, val)
		}

		cfg, err := loadConfig()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.dbHost)
		assert.Equal(t, "trending_record", cfg.recordTable)
		assert.Equal(t, "yt-key", cfg.youtubeAPIKey)
		assert.Equal(t, "rapid-key", cfg.rapidAPIKey)
	})

	t.Run("every missing param is reported", func(t *testing.T) {
		for param, val := range configParams {
			t.Setenv(param, val)
		}
		t.Setenv("YOUTUBE_API_KEY", "")
		t.Setenv("RAPID_API_KEY", "")

		_, err := loadConfig()
		require.Error(t, err)
		assert.ErrorContains(t, err, "YOUTUBE_API_KEY")
		assert.ErrorContains(t, err, "RAPID_API_KEY")
	})
}
