package fetch

import (
	"fmt"

	"ewintr.nl/trending/model"
	"golang.org/x/exp/slog"
)

type TrendingSource interface {
	TrendingIDs() ([]model.VideoID, error)
}

type VideoFetcher interface {
	FetchVideos(ids []model.VideoID) ([]model.VideoRecord, error)
}

type ChannelFetcher interface {
	FetchChannels(ids []model.ChannelID) ([]model.ChannelRecord, error)
}

type Pipeline struct {
	trending TrendingSource
	videos   VideoFetcher
	channels ChannelFetcher
	logger   *slog.Logger
}

func NewPipeline(trending TrendingSource, videos VideoFetcher, channels ChannelFetcher, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		trending: trending,
		videos:   videos,
		channels: channels,
		logger:   logger,
	}
}

// Harvest runs one full acquisition pass: discover the trending ids, fetch
// video details in batches, then channel details for every channel those
// videos reference. Both result sets are deduplicated, first occurrence
// wins. Any stage error aborts the run.
func (p *Pipeline) Harvest() ([]model.VideoRecord, []model.ChannelRecord, error) {
	ids, err := p.trending.TrendingIDs()
	if err != nil {
		return nil, nil, fmt.Errorf("could not discover trending ids: %w", err)
	}
	p.logger.Info("discovered trending ids", slog.Int("count", len(ids)))

	videos, err := Combine(ids, p.videos.FetchVideos, IDBatchLimit, OffsetVideoRanks)
	if err != nil {
		return nil, nil, fmt.Errorf("could not fetch trending videos: %w", err)
	}
	videos = dedupeVideos(videos)
	p.logger.Info("fetched trending videos", slog.Int("count", len(videos)))

	channels, err := Combine(channelIDs(videos), p.channels.FetchChannels, IDBatchLimit, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("could not fetch trending channels: %w", err)
	}
	channels = dedupeChannels(channels)
	p.logger.Info("fetched trending channels", slog.Int("count", len(channels)))

	return videos, channels, nil
}

func dedupeVideos(records []model.VideoRecord) []model.VideoRecord {
	seen := make(map[model.VideoID]bool, len(records))
	deduped := make([]model.VideoRecord, 0, len(records))
	for _, record := range records {
		if seen[record.VideoID] {
			continue
		}
		seen[record.VideoID] = true
		deduped = append(deduped, record)
	}

	return deduped
}

func dedupeChannels(records []model.ChannelRecord) []model.ChannelRecord {
	seen := make(map[model.ChannelID]bool, len(records))
	deduped := make([]model.ChannelRecord, 0, len(records))
	for _, record := range records {
		if seen[record.ChannelID] {
			continue
		}
		seen[record.ChannelID] = true
		deduped = append(deduped, record)
	}

	return deduped
}

// channelIDs lists the distinct channel ids referenced by records, in
// first-seen order.
func channelIDs(records []model.VideoRecord) []model.ChannelID {
	seen := make(map[model.ChannelID]bool, len(records))
	ids := make([]model.ChannelID, 0, len(records))
	for _, record := range records {
		if seen[record.ChannelID] {
			continue
		}
		seen[record.ChannelID] = true
		ids = append(ids, record.ChannelID)
	}

	return ids
}
