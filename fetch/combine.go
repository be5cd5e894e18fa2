package fetch

import (
	"fmt"

	"ewintr.nl/trending/model"
)

// Combine splits ids into chunks of chunkSize, fetches each chunk in order
// and concatenates the results. Callers whose fetch produces ranked rows
// pass an offsetRank func; each ranked chunk then has its local ranks
// offset so they stay contiguous across chunk boundaries. A fetch error
// aborts the whole combine, nothing fetched so far is kept.
func Combine[ID ~string, T any](ids []ID, fetch func([]ID) ([]T, error), chunkSize int, offsetRank func([]T, int)) ([]T, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("invalid chunk size %d", chunkSize)
	}

	combined := make([]T, 0, len(ids))
	chunkIndex, chunkNo := 0, 0
	for len(ids) > 0 {
		n := chunkSize
		if len(ids) < n {
			n = len(ids)
		}
		chunk := ids[:n]
		ids = ids[n:]

		rows, err := fetch(chunk)
		if err != nil {
			return nil, fmt.Errorf("could not combine chunk %d: %w", chunkNo, err)
		}
		if offsetRank != nil {
			// offsets assume chunks are fetched strictly in order
			offsetRank(rows, chunkIndex*chunkSize)
			chunkIndex++
		}
		combined = append(combined, rows...)
		chunkNo++
	}

	return combined, nil
}

func OffsetVideoRanks(records []model.VideoRecord, by int) {
	for i := range records {
		records[i].Rank += by
	}
}
