package sources

import (
	"context"
	"strconv"
	"time"

	"github.com/briangreenhill/recogate/fakestore"
	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/metrics"
	"github.com/briangreenhill/recogate/internal/normalize"
)

// FakeStore serves products from the FakeStore catalog.
type FakeStore struct {
	client *fakestore.Client
}

func NewFakeStore(client *fakestore.Client) *FakeStore {
	return &FakeStore{client: client}
}

func (s *FakeStore) Name() string                { return "fakestore" }
func (s *FakeStore) Category() classify.Category { return classify.Products }

// Search narrows to a store category when the terms name one; genre is unused.
func (s *FakeStore) Search(ctx context.Context, terms, _ string) ([]normalize.Raw, error) {
	started := time.Now()
	ps, err := s.client.Products(ctx, fakestore.CategoryFor(terms))
	metrics.ObserveUpstream(s.Name(), started, err)
	if err != nil {
		return nil, err
	}

	if len(ps) > maxPerSource {
		ps = ps[:maxPerSource]
	}
	out := make([]normalize.Raw, 0, len(ps))
	for _, p := range ps {
		out = append(out, normalize.Raw{
			SourceID:    strconv.Itoa(p.ID),
			Title:       p.Title,
			Secondary:   p.Category,
			Description: p.Description,
			Image:       p.Image,
			Rating:      p.Rating.Rate,
			Price:       p.Price,
			Link:        s.client.Link(p),
		})
	}
	return out, nil
}
