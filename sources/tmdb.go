package sources

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/metrics"
	"github.com/briangreenhill/recogate/internal/normalize"
	"github.com/briangreenhill/recogate/tmdb"
)

const maxPerSource = 5

// TMDB serves movies from The Movie Database.
type TMDB struct {
	client *tmdb.Client
}

func NewTMDB(client *tmdb.Client) *TMDB {
	return &TMDB{client: client}
}

func (s *TMDB) Name() string                { return "tmdb" }
func (s *TMDB) Category() classify.Category { return classify.Movies }

// Search keeps only titles with a poster, as the discovery view is image-led.
func (s *TMDB) Search(ctx context.Context, terms, genre string) ([]normalize.Raw, error) {
	opts := tmdb.SearchOptions{}
	if id, ok := classify.TMDBGenreID(genre); ok {
		opts.GenreID = id
	}

	started := time.Now()
	pg, err := s.client.SearchMovies(ctx, terms, opts)
	metrics.ObserveUpstream(s.Name(), started, err)
	if err != nil {
		return nil, err
	}

	out := make([]normalize.Raw, 0, maxPerSource)
	for _, m := range pg.Results {
		if m.PosterPath == "" {
			continue
		}
		raw := MovieRaw(s.client, m)
		raw.Link = "https://www.themoviedb.org/movie/" + strconv.Itoa(m.ID)
		out = append(out, raw)
		if len(out) == maxPerSource {
			break
		}
	}
	return out, nil
}

// MovieRaw converts a TMDB list entry, rounding the vote average to one decimal.
func MovieRaw(c *tmdb.Client, m tmdb.Movie) normalize.Raw {
	return normalize.Raw{
		SourceID:    strconv.Itoa(m.ID),
		Title:       m.Title,
		Description: m.Overview,
		Image:       c.ImageURL(m.PosterPath),
		Rating:      math.Round(m.VoteAverage*10) / 10,
		Year:        m.Year(),
	}
}
