package fetch

import (
	"errors"
	"io"
	"testing"

	"ewintr.nl/trending/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type stubTrending struct {
	ids []model.VideoID
	err error
}

func (s stubTrending) TrendingIDs() ([]model.VideoID, error) {
	return s.ids, s.err
}

type stubVideoFetcher struct {
	channelOf map[model.VideoID]model.ChannelID
	err       error
}

func (s stubVideoFetcher) FetchVideos(ids []model.VideoID) ([]model.VideoRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	records := make([]model.VideoRecord, 0, len(ids))
	for i, id := range ids {
		channelID := s.channelOf[id]
		if channelID == "" {
			channelID = model.ChannelID("channel-" + id)
		}
		records = append(records, model.VideoRecord{
			VideoID:   id,
			ChannelID: channelID,
			Rank:      i + 1,
		})
	}

	return records, nil
}

type stubChannelFetcher struct {
	fetched []model.ChannelID
	err     error
}

func (s *stubChannelFetcher) FetchChannels(ids []model.ChannelID) ([]model.ChannelRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.fetched = append(s.fetched, ids...)
	records := make([]model.ChannelRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, model.ChannelRecord{ChannelID: id})
	}

	return records, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

func TestHarvest(t *testing.T) {
	t.Run("videos keep discovery order and rank", func(t *testing.T) {
		channels := &stubChannelFetcher{}
		p := NewPipeline(
			stubTrending{ids: []model.VideoID{"a", "b", "c"}},
			stubVideoFetcher{},
			channels,
			testLogger(),
		)

		videos, channelRecords, err := p.Harvest()
		require.NoError(t, err)

		require.Len(t, videos, 3)
		for i, id := range []model.VideoID{"a", "b", "c"} {
			assert.Equal(t, id, videos[i].VideoID)
			assert.Equal(t, i+1, videos[i].Rank)
		}
		assert.Len(t, channelRecords, 3)
	})

	t.Run("duplicate video ids keep the first occurrence", func(t *testing.T) {
		p := NewPipeline(
			stubTrending{ids: []model.VideoID{"a", "b", "a", "c"}},
			stubVideoFetcher{},
			&stubChannelFetcher{},
			testLogger(),
		)

		videos, _, err := p.Harvest()
		require.NoError(t, err)

		require.Len(t, videos, 3)
		assert.Equal(t, model.VideoID("a"), videos[0].VideoID)
		assert.Equal(t, 1, videos[0].Rank)
		assert.Equal(t, model.VideoID("b"), videos[1].VideoID)
		assert.Equal(t, model.VideoID("c"), videos[2].VideoID)
	})

	t.Run("each distinct channel is fetched once, in first-seen order", func(t *testing.T) {
		channels := &stubChannelFetcher{}
		p := NewPipeline(
			stubTrending{ids: []model.VideoID{"v1", "v2", "v3", "v4"}},
			stubVideoFetcher{channelOf: map[model.VideoID]model.ChannelID{
				"v1": "x", "v2": "y", "v3": "x", "v4": "z",
			}},
			channels,
			testLogger(),
		)

		_, channelRecords, err := p.Harvest()
		require.NoError(t, err)

		assert.Equal(t, []model.ChannelID{"x", "y", "z"}, channels.fetched)
		require.Len(t, channelRecords, 3)
		assert.Equal(t, model.ChannelID("x"), channelRecords[0].ChannelID)
	})

	t.Run("discovery failure aborts", func(t *testing.T) {
		p := NewPipeline(
			stubTrending{err: errors.New("rapid api down")},
			stubVideoFetcher{},
			&stubChannelFetcher{},
			testLogger(),
		)

		_, _, err := p.Harvest()
		require.Error(t, err)
		assert.ErrorContains(t, err, "rapid api down")
	})

	t.Run("video fetch failure aborts", func(t *testing.T) {
		p := NewPipeline(
			stubTrending{ids: []model.VideoID{"a"}},
			stubVideoFetcher{err: errors.New("quota exceeded")},
			&stubChannelFetcher{},
			testLogger(),
		)

		_, _, err := p.Harvest()
		require.Error(t, err)
	})

	t.Run("channel fetch failure aborts", func(t *testing.T) {
		p := NewPipeline(
			stubTrending{ids: []model.VideoID{"a"}},
			stubVideoFetcher{},
			&stubChannelFetcher{err: errors.New("quota exceeded")},
			testLogger(),
		)

		_, _, err := p.Harvest()
		require.Error(t, err)
	})
}

func TestChannelIDs(t *testing.T) {
	records := []model.VideoRecord{
		{VideoID: "1", ChannelID: "x"},
		{VideoID: "2", ChannelID: "y"},
		{VideoID: "3", ChannelID: "x"},
		{VideoID: "4", ChannelID: "z"},
	}

	assert.Equal(t, []model.ChannelID{"x", "y", "z"}, channelIDs(records))
}

func TestDedupe(t *testing.T) {
	t.Run("videos", func(t *testing.T) {
		records := []model.VideoRecord{
			{VideoID: "a", Rank: 1},
			{VideoID: "b", Rank: 2},
			{VideoID: "a", Rank: 3},
		}

		deduped := dedupeVideos(records)

		require.Len(t, deduped, 2)
		assert.Equal(t, 1, deduped[0].Rank)
		// idempotent
		assert.Equal(t, deduped, dedupeVideos(deduped))
	})

	t.Run("channels", func(t *testing.T) {
		records := []model.ChannelRecord{
			{ChannelID: "x", Title: "first"},
			{ChannelID: "x", Title: "second"},
			{ChannelID: "y"},
		}

		deduped := dedupeChannels(records)

		require.Len(t, deduped, 2)
		assert.Equal(t, "first", deduped[0].Title)
		assert.Equal(t, deduped, dedupeChannels(deduped))
	})
}
