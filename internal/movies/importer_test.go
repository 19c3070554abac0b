package movies

import (
	"testing"
	"time"

	"cinebook/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
	"page": 1,
	"results": [
		{
			"id": 603692,
			"title": "John Wick: Chapter 4",
			"overview": "With the price on his head ever increasing...",
			"poster_path": "/vZloFAK7NmvMGKE7VkF5UHaz0I.jpg",
			"genre_ids": [28, 53, 80],
			"release_date": "2023-03-22"
		},
		{
			"id": 0,
			"title": "Missing ID",
			"overview": "should be skipped"
		},
		{
			"id": 550,
			"title": "Fight Club",
			"overview": "A ticking-time-bomb insomniac...",
			"genre_ids": [18],
			"release_date": "1999-10-15"
		}
	]
}`

func TestParseFeed(t *testing.T) {
	imp := NewImporter(config.CatalogConfig{
		ImageBase: "https://image.tmdb.org/t/p/w500",
	})

	entries := imp.parseFeed(sampleFeed)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(603692), entries[0].ExternalID)
	assert.Equal(t, "John Wick: Chapter 4", entries[0].Title)
	assert.Equal(t, "Action", entries[0].Genre)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/vZloFAK7NmvMGKE7VkF5UHaz0I.jpg", entries[0].PosterURL)
	assert.Equal(t, time.Date(2023, 3, 22, 0, 0, 0, 0, time.UTC), entries[0].ReleaseDate)

	assert.Equal(t, int64(550), entries[1].ExternalID)
	assert.Equal(t, "Drama", entries[1].Genre)
	assert.Empty(t, entries[1].PosterURL)
}

func TestParseFeedEmpty(t *testing.T) {
	imp := NewImporter(config.CatalogConfig{})
	assert.Empty(t, imp.parseFeed(`{"results": []}`))
	assert.Empty(t, imp.parseFeed(`{}`))
}
