package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"ewintr.nl/trending/model"
)

type PostgresTrendingRepository struct {
	postgres *Postgres
	tables   Tables
}

func NewPostgresTrendingRepository(postgres *Postgres, tables Tables) *PostgresTrendingRepository {
	return &PostgresTrendingRepository{
		postgres: postgres,
		tables:   tables,
	}
}

// SaveRecords appends one snapshot row per video. Rows are never updated,
// every run adds a new set.
func (p *PostgresTrendingRepository) SaveRecords(videos []model.VideoRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s
(video_id, channel_id, rank, views_millions, extracted_at)
VALUES ($1, $2, $3, $4, $5)`, p.tables.Records)

	return p.inTransaction(func(tx *sql.Tx) error {
		for _, video := range videos {
			record := video.TrendingRecord()
			if _, err := tx.Exec(query,
				string(record.VideoID),
				string(record.ChannelID),
				record.Rank,
				record.ViewsMillions,
				nullableTimestamp(record.ExtractedAt),
			); err != nil {
				return fmt.Errorf("could not insert record for video %s: %w", record.VideoID, err)
			}
		}

		return nil
	})
}

func (p *PostgresTrendingRepository) SaveVideos(videos []model.VideoRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s
(video_id, title, duration_sec, views_millions, category, channel_id, channel_title, tags, published_at, extracted_at, rank)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (video_id) DO UPDATE SET
title = EXCLUDED.title,
duration_sec = EXCLUDED.duration_sec,
views_millions = EXCLUDED.views_millions,
category = EXCLUDED.category,
channel_id = EXCLUDED.channel_id,
channel_title = EXCLUDED.channel_title,
tags = EXCLUDED.tags,
published_at = EXCLUDED.published_at,
extracted_at = EXCLUDED.extracted_at,
rank = EXCLUDED.rank`, p.tables.Videos)

	return p.inTransaction(func(tx *sql.Tx) error {
		for _, video := range videos {
			if _, err := tx.Exec(query,
				string(video.VideoID),
				video.Title,
				video.DurationSec,
				video.ViewsMillions,
				video.Category,
				string(video.ChannelID),
				video.ChannelTitle,
				strings.Join(video.Tags, ","),
				nullableTimestamp(video.PublishedAt),
				nullableTimestamp(video.ExtractedAt),
				video.Rank,
			); err != nil {
				return fmt.Errorf("could not upsert video %s: %w", video.VideoID, err)
			}
		}

		return nil
	})
}

func (p *PostgresTrendingRepository) SaveChannels(channels []model.ChannelRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s
(channel_id, channel_title, custom_url, country, published_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (channel_id) DO UPDATE SET
channel_title = EXCLUDED.channel_title,
custom_url = EXCLUDED.custom_url,
country = EXCLUDED.country,
published_at = EXCLUDED.published_at`, p.tables.Channels)

	return p.inTransaction(func(tx *sql.Tx) error {
		for _, channel := range channels {
			if _, err := tx.Exec(query,
				string(channel.ChannelID),
				channel.Title,
				channel.CustomURL,
				channel.Country,
				nullableTimestamp(channel.PublishedAt),
			); err != nil {
				return fmt.Errorf("could not upsert channel %s: %w", channel.ChannelID, err)
			}
		}

		return nil
	})
}

// inTransaction commits the whole batch or rolls it back on the first error.
func (p *PostgresTrendingRepository) inTransaction(act func(tx *sql.Tx) error) error {
	tx, err := p.postgres.db.Begin()
	if err != nil {
		return err
	}
	if err := act(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func nullableTimestamp(value string) sql.NullString {
	return sql.NullString{
		String: value,
		Valid:  value != "",
	}
}
