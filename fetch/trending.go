package fetch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"ewintr.nl/trending/model"
	"golang.org/x/exp/slog"
)

// TrendingEndpoint serves the "trending now" feed in the same order as the
// youtube.com trending page, which makes it the ground truth for rank.
const TrendingEndpoint = "https://youtube-search-and-download.p.rapidapi.com/trending"

type RapidAPIInfo struct {
	Endpoint string
	APIKey   string
}

type RapidAPI struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

func NewRapidAPI(rapidInfo RapidAPIInfo, logger *slog.Logger) *RapidAPI {
	return &RapidAPI{
		endpoint: rapidInfo.Endpoint,
		apiKey:   rapidInfo.APIKey,
		client:   &http.Client{},
		logger:   logger,
	}
}

type trendingResponse struct {
	Contents []struct {
		Video struct {
			VideoID string `json:"videoId"`
		} `json:"video"`
	} `json:"contents"`
	Message string `json:"message"`
}

// TrendingIDs returns the ids of the current trending videos in upstream
// order. Rate limiting embeds a message in an otherwise valid body, so a
// response without contents is an error carrying that message.
func (r *RapidAPI) TrendingIDs() ([]model.VideoID, error) {
	req, err := http.NewRequest(http.MethodGet, r.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create trending request: %w", err)
	}
	req.URL.RawQuery = url.Values{
		"type": {"n"},
		"hl":   {"en"},
		"gl":   {"US"},
	}.Encode()
	req.Header.Set("X-RapidAPI-Key", r.apiKey)
	req.Header.Set("X-RapidAPI-Host", req.URL.Host)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch trending feed: %w", err)
	}
	defer resp.Body.Close()

	var tr trendingResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("could not decode trending feed: %w", err)
	}
	if len(tr.Contents) == 0 {
		if tr.Message != "" {
			err := fmt.Errorf("trending feed error: %s", tr.Message)
			r.logger.Error("trending feed returned a message instead of contents", err)
			return nil, err
		}
		return nil, fmt.Errorf("trending feed returned no contents")
	}

	ids := make([]model.VideoID, 0, len(tr.Contents))
	for _, content := range tr.Contents {
		ids = append(ids, model.VideoID(content.Video.VideoID))
	}
	r.logger.Info("fetched trending feed", slog.Int("count", len(ids)))

	return ids, nil
}
