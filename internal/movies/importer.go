package movies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cinebook/internal/shared/config"

	"github.com/tidwall/gjson"
)

// genreNames maps the catalog feed's numeric genre ids to display names
var genreNames = map[int64]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	27:    "Horror",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	53:    "Thriller",
}

// Importer fetches movie data from a TMDB-compatible catalog API
type Importer struct {
	cfg    config.CatalogConfig
	client *http.Client
}

func NewImporter(cfg config.CatalogConfig) *Importer {
	return &Importer{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchPopular retrieves the popular-movies feed and parses it into
// catalog entries.
func (i *Importer) FetchPopular(ctx context.Context) ([]CatalogEntry, error) {
	url := fmt.Sprintf("%s/movie/popular?api_key=%s", i.cfg.BaseURL, i.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return i.parseFeed(string(body)), nil
}

func (i *Importer) parseFeed(payload string) []CatalogEntry {
	var entries []CatalogEntry

	gjson.Get(payload, "results").ForEach(func(_, item gjson.Result) bool {
		entry := CatalogEntry{
			ExternalID:  item.Get("id").Int(),
			Title:       item.Get("title").String(),
			Description: item.Get("overview").String(),
		}
		if entry.ExternalID == 0 || entry.Title == "" {
			return true
		}

		if poster := item.Get("poster_path").String(); poster != "" {
			entry.PosterURL = i.cfg.ImageBase + poster
		}

		if genreID := item.Get("genre_ids.0").Int(); genreID != 0 {
			entry.Genre = genreNames[genreID]
		}

		if release := item.Get("release_date").String(); release != "" {
			if t, err := time.Parse("2006-01-02", release); err == nil {
				entry.ReleaseDate = t
			}
		}

		entries = append(entries, entry)
		return true
	})

	return entries
}
