package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareMigrations(t *testing.T) {
	for _, tc := range []struct {
		name     string
		wanted   []string
		existing []string
		exp      []string
		expErr   bool
	}{
		{
			name:   "fresh database wants everything",
			wanted: []string{"one", "two"},
			exp:    []string{"one", "two"},
		},
		{
			name:     "up to date",
			wanted:   []string{"one", "two"},
			existing: []string{"one", "two"},
			exp:      []string{},
		},
		{
			name:     "new migrations appended",
			wanted:   []string{"one", "two", "three"},
			existing: []string{"one"},
			exp:      []string{"two", "three"},
		},
		{
			name:     "registry ahead of code",
			wanted:   []string{"one"},
			existing: []string{"one", "two"},
			expErr:   true,
		},
		{
			name:     "diverged registry",
			wanted:   []string{"one", "other"},
			existing: []string{"one", "two"},
			expErr:   true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			needed, err := compareMigrations(tc.wanted, tc.existing)
			if tc.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, needed)
		})
	}
}

func TestMigrationQueries(t *testing.T) {
	tables := Tables{
		Records:  "trending_record",
		Videos:   "trending_video",
		Channels: "trending_channel",
	}

	queries := migrationQueries(tables)

	require.NotEmpty(t, queries)
	joined := ""
	for _, query := range queries {
		joined += query + "\n"
	}
	assert.Contains(t, joined, "CREATE TABLE trending_record")
	assert.Contains(t, joined, "CREATE TABLE trending_video")
	assert.Contains(t, joined, "CREATE TABLE trending_channel")
	assert.Contains(t, joined, "video_id VARCHAR(255) NOT NULL UNIQUE")
	assert.Contains(t, joined, "channel_id VARCHAR(255) NOT NULL UNIQUE")
}

func TestNullableTimestamp(t *testing.T) {
	assert.False(t, nullableTimestamp("").Valid)

	res := nullableTimestamp("2023-05-04 12:30:45")
	assert.True(t, res.Valid)
	assert.Equal(t, "2023-05-04 12:30:45", res.String)
}
