package model

import "database/sql"

type VideoID string

type ChannelID string

// VideoRecord is one trending video as fetched in a single run. Rank is
// assigned per fetch batch and made globally contiguous by the combiner.
type VideoRecord struct {
	VideoID       VideoID
	Title         string
	DurationSec   int
	ViewsMillions sql.NullFloat64
	Category      string
	ChannelID     ChannelID
	ChannelTitle  string
	Tags          []string
	PublishedAt   string
	ExtractedAt   string
	Rank          int
}

type ChannelRecord struct {
	ChannelID   ChannelID
	Title       string
	CustomURL   string
	Country     string
	PublishedAt string
}

// TrendingRecord is the append-only snapshot fact, one per video per run.
type TrendingRecord struct {
	VideoID       VideoID
	ChannelID     ChannelID
	Rank          int
	ViewsMillions sql.NullFloat64
	ExtractedAt   string
}

func (v VideoRecord) TrendingRecord() TrendingRecord {
	return TrendingRecord{
		VideoID:       v.VideoID,
		ChannelID:     v.ChannelID,
		Rank:          v.Rank,
		ViewsMillions: v.ViewsMillions,
		ExtractedAt:   v.ExtractedAt,
	}
}
