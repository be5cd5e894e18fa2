package storage

import "fmt"

// Tables holds the configured names of the three destination tables. The
// migration registry stores the templated queries, so the names must stay
// stable between runs against the same database.
type Tables struct {
	Records  string
	Videos   string
	Channels string
}

func migrationQueries(tables Tables) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE %s (
id SERIAL PRIMARY KEY,
video_id VARCHAR(255) NOT NULL,
channel_id VARCHAR(255) NOT NULL,
rank INTEGER NOT NULL,
views_millions NUMERIC(10,2),
extracted_at TIMESTAMP
)`, tables.Records),
		fmt.Sprintf(`CREATE INDEX %s_video_id_idx ON %s (video_id)`, tables.Records, tables.Records),
		fmt.Sprintf(`CREATE INDEX %s_channel_id_idx ON %s (channel_id)`, tables.Records, tables.Records),
		fmt.Sprintf(`CREATE TABLE %s (
id SERIAL PRIMARY KEY,
video_id VARCHAR(255) NOT NULL UNIQUE,
title VARCHAR(255) NOT NULL,
duration_sec INTEGER NOT NULL,
views_millions NUMERIC(10,2),
category VARCHAR(255) NOT NULL DEFAULT '',
channel_id VARCHAR(255) NOT NULL,
channel_title VARCHAR(255) NOT NULL,
tags TEXT NOT NULL DEFAULT '',
published_at TIMESTAMP,
extracted_at TIMESTAMP,
rank INTEGER NOT NULL
)`, tables.Videos),
		fmt.Sprintf(`CREATE TABLE %s (
id SERIAL PRIMARY KEY,
channel_id VARCHAR(255) NOT NULL UNIQUE,
channel_title VARCHAR(255) NOT NULL,
custom_url VARCHAR(255) NOT NULL DEFAULT '',
country VARCHAR(255) NOT NULL DEFAULT '',
published_at TIMESTAMP
)`, tables.Channels),
	}
}
