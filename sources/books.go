package sources

import (
	"context"
	"strings"
	"time"

	"github.com/briangreenhill/recogate/googlebooks"
	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/metrics"
	"github.com/briangreenhill/recogate/internal/normalize"
)

const maxDescription = 200

// GoogleBooks serves books from the Google Books API.
type GoogleBooks struct {
	client *googlebooks.Client
}

func NewGoogleBooks(client *googlebooks.Client) *GoogleBooks {
	return &GoogleBooks{client: client}
}

func (s *GoogleBooks) Name() string                { return "googlebooks" }
func (s *GoogleBooks) Category() classify.Category { return classify.Books }

// Search appends the genre to the query text since the API has no genre filter.
func (s *GoogleBooks) Search(ctx context.Context, terms, genre string) ([]normalize.Raw, error) {
	q := strings.TrimSpace(terms + " " + genre)

	started := time.Now()
	vols, err := s.client.Search(ctx, q, maxPerSource)
	metrics.ObserveUpstream(s.Name(), started, err)
	if err != nil {
		return nil, err
	}

	out := make([]normalize.Raw, 0, len(vols))
	for _, v := range vols {
		info := v.VolumeInfo
		secondary := genre
		if secondary == "" && len(info.Categories) > 0 {
			secondary = info.Categories[0]
		}
		out = append(out, normalize.Raw{
			SourceID:    v.ID,
			Title:       info.Title,
			Secondary:   secondary,
			Author:      strings.Join(info.Authors, ", "),
			Description: truncate(info.Description, maxDescription),
			Image:       info.ImageLinks.Thumbnail,
			Rating:      info.AverageRating,
			Year:        yearOf(info.PublishedDate),
			Link:        info.PreviewLink,
		})
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func yearOf(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}
