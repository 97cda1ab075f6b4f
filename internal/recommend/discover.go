package recommend

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/normalize"
	"github.com/briangreenhill/recogate/internal/prompt"
	"github.com/briangreenhill/recogate/internal/query"
)

// Categories queried together when the query names no single category.
var fanoutCategories = []classify.Category{classify.Movies, classify.Books}

// Discovery is the answer to an open-ended query.
type Discovery struct {
	QueryID  string            `json:"query_id"`
	Items    []normalize.Item  `json:"results"`
	Category classify.Category `json:"category,omitempty"`
	Genre    string            `json:"genre,omitempty"`
	Terms    string            `json:"terms"`
	Message  string            `json:"message"`
}

// Discover classifies by keyword counts. A clear winner is served by its
// registered source; otherwise movie and book sources run concurrently
// and their results are joined. One failing source never cancels another.
func (s *Service) Discover(ctx context.Context, raw string) Discovery {
	normalized := query.Normalize(raw)
	c, ok := classify.MaxCount{}.Classify(normalized)
	genre, _ := classify.DetectGenre(normalized)
	terms := classify.ExtractSearchTerms(raw)

	d := Discovery{
		QueryID: uuid.NewString(),
		Genre:   genre,
		Terms:   terms,
	}

	cats := fanoutCategories
	if ok {
		d.Category = c
		cats = []classify.Category{c}
	}
	// a genre narrows a single-category search only
	searchGenre := ""
	if ok {
		searchGenre = genre
	}

	perCat := s.gather(ctx, cats, terms, searchGenre)
	for _, cat := range cats {
		d.Items = append(d.Items, perCat[cat]...)
	}

	if len(d.Items) == 0 {
		d.Message = prompt.NoResults(raw, d.Category.String())
		return d
	}
	titles := make([]string, 0, len(d.Items))
	for _, it := range d.Items {
		titles = append(titles, it.Title)
	}
	d.Message = s.summary.Summary(raw, d.Category.String(), titles)
	return d
}

func (s *Service) gather(ctx context.Context, cats []classify.Category, terms, genre string) map[classify.Category][]normalize.Item {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[classify.Category][]normalize.Item, len(cats))
		sem = semaphore.NewWeighted(s.fanout)
	)

	for _, cat := range cats {
		src, ok := s.registry.ForCategory(cat)
		if !ok {
			s.log.Debug().Str("category", cat.String()).Msg("no source registered")
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			raws, err := src.Search(ctx, terms, genre)
			if err != nil {
				s.log.Warn().Err(err).Str("source", src.Name()).Msg("source failed")
				return
			}
			items := normalize.All(raws, cat)
			mu.Lock()
			out[cat] = items
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}
