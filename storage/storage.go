package storage

import "ewintr.nl/trending/model"

type TrendingRepository interface {
	SaveRecords(videos []model.VideoRecord) error
	SaveVideos(videos []model.VideoRecord) error
	SaveChannels(channels []model.ChannelRecord) error
}
