package fetch

import (
	"errors"
	"fmt"
	"strings"

	"ewintr.nl/trending/model"
	"golang.org/x/exp/slog"
	"google.golang.org/api/youtube/v3"
)

// IDBatchLimit is the ceiling the YouTube list endpoints put on a single
// comma-joined id parameter. More than that gets a 400 back.
const IDBatchLimit = 50

var (
	ErrBatchTooLarge   = errors.New("too many ids for one detail request")
	ErrNoResponseItems = errors.New("no items in response")
)

type CategoryResolver interface {
	ResolveCategory(categoryID string) string
}

type Youtube struct {
	client   *youtube.Service
	resolver CategoryResolver
	logger   *slog.Logger
}

func NewYoutube(client *youtube.Service, logger *slog.Logger) *Youtube {
	y := &Youtube{
		client: client,
		logger: logger,
	}
	y.resolver = y

	return y
}

// ResolveCategory looks up the title of a video category. Every call is a
// request, repeated ids are looked up again. An unresolvable category is not
// an error, the video just goes in without one.
func (y *Youtube) ResolveCategory(categoryID string) string {
	response, err := y.client.VideoCategories.
		List([]string{"snippet"}).
		Id(categoryID).
		Do()
	if err != nil {
		y.logger.Error("could not resolve video category", err, slog.String("categoryid", categoryID))
		return ""
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		y.logger.Error("video category lookup returned no match", ErrNoResponseItems, slog.String("categoryid", categoryID))
		return ""
	}

	return response.Items[0].Snippet.Title
}

// FetchVideos returns one record per video id, in response order, with rank
// set to the 1-based position within this batch. When a required field of an
// item cannot be extracted, the records built so far are returned and the
// rest of the batch is dropped.
func (y *Youtube) FetchVideos(ids []model.VideoID) ([]model.VideoRecord, error) {
	if len(ids) > IDBatchLimit {
		y.logger.Error("video detail batch exceeds the id limit", ErrBatchTooLarge, slog.Int("count", len(ids)))
		return nil, ErrBatchTooLarge
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = string(id)
	}
	response, err := y.client.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		MaxResults(IDBatchLimit).
		Id(strings.Join(strIDs, ",")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("could not fetch video details: %w", err)
	}
	if len(response.Items) == 0 {
		y.logger.Info("video detail request returned no items")
		return nil, ErrNoResponseItems
	}

	return y.videoRecords(response.Items), nil
}

func (y *Youtube) videoRecords(items []*youtube.Video) []model.VideoRecord {
	records := make([]model.VideoRecord, 0, len(items))
	for i, item := range items {
		record, err := y.videoRecord(item, i+1)
		if err != nil {
			y.logger.Error("could not build video record, dropping rest of batch", err, slog.String("videoid", item.Id))
			return records
		}
		records = append(records, record)
	}

	return records
}

func (y *Youtube) videoRecord(item *youtube.Video, rank int) (model.VideoRecord, error) {
	if item.Snippet == nil {
		return model.VideoRecord{}, fmt.Errorf("video %q has no snippet", item.Id)
	}
	if item.ContentDetails == nil {
		return model.VideoRecord{}, fmt.Errorf("video %q has no content details", item.Id)
	}

	id, err := requiredField("id", item.Id)
	if err != nil {
		return model.VideoRecord{}, err
	}
	title, err := requiredField("title", item.Snippet.Title)
	if err != nil {
		return model.VideoRecord{}, err
	}
	durationSec, err := DurationToSeconds(item.ContentDetails.Duration)
	if err != nil {
		return model.VideoRecord{}, err
	}
	categoryID, err := requiredField("categoryId", item.Snippet.CategoryId)
	if err != nil {
		return model.VideoRecord{}, err
	}
	channelID, err := requiredField("channelId", item.Snippet.ChannelId)
	if err != nil {
		return model.VideoRecord{}, err
	}
	channelTitle, err := requiredField("channelTitle", item.Snippet.ChannelTitle)
	if err != nil {
		return model.VideoRecord{}, err
	}

	views := ""
	if item.Statistics != nil {
		views = fmt.Sprintf("%d", item.Statistics.ViewCount)
	}

	// optional, an unparseable value just stays empty
	publishedAt, _ := NormalizeTimestamp(item.Snippet.PublishedAt)

	return model.VideoRecord{
		VideoID:       model.VideoID(id),
		Title:         title,
		DurationSec:   durationSec,
		ViewsMillions: CompactCount(views),
		Category:      y.resolver.ResolveCategory(categoryID),
		ChannelID:     model.ChannelID(channelID),
		ChannelTitle:  channelTitle,
		Tags:          item.Snippet.Tags,
		PublishedAt:   publishedAt,
		ExtractedAt:   CurrentLocalTimestamp(),
		Rank:          rank,
	}, nil
}

// FetchChannels returns one record per channel id, same batch policy as
// FetchVideos.
func (y *Youtube) FetchChannels(ids []model.ChannelID) ([]model.ChannelRecord, error) {
	if len(ids) > IDBatchLimit {
		y.logger.Error("channel detail batch exceeds the id limit", ErrBatchTooLarge, slog.Int("count", len(ids)))
		return nil, ErrBatchTooLarge
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = string(id)
	}
	response, err := y.client.Channels.
		List([]string{"snippet"}).
		MaxResults(IDBatchLimit).
		Id(strings.Join(strIDs, ",")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("could not fetch channel details: %w", err)
	}
	if len(response.Items) == 0 {
		y.logger.Info("channel detail request returned no items")
		return nil, ErrNoResponseItems
	}

	return y.channelRecords(response.Items), nil
}

func (y *Youtube) channelRecords(items []*youtube.Channel) []model.ChannelRecord {
	records := make([]model.ChannelRecord, 0, len(items))
	for _, item := range items {
		record, err := channelRecord(item)
		if err != nil {
			y.logger.Error("could not build channel record, dropping rest of batch", err, slog.String("channelid", item.Id))
			return records
		}
		records = append(records, record)
	}

	return records
}

func channelRecord(item *youtube.Channel) (model.ChannelRecord, error) {
	if item.Snippet == nil {
		return model.ChannelRecord{}, fmt.Errorf("channel %q has no snippet", item.Id)
	}

	id, err := requiredField("id", item.Id)
	if err != nil {
		return model.ChannelRecord{}, err
	}
	title, err := requiredField("title", item.Snippet.Title)
	if err != nil {
		return model.ChannelRecord{}, err
	}

	publishedAt, _ := NormalizeTimestamp(item.Snippet.PublishedAt)

	return model.ChannelRecord{
		ChannelID:   model.ChannelID(id),
		Title:       title,
		CustomURL:   item.Snippet.CustomUrl,
		Country:     item.Snippet.Country,
		PublishedAt: publishedAt,
	}, nil
}

func requiredField(name, value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("missing required field %s", name)
	}

	return value, nil
}
