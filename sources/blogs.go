package sources

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/normalize"
)

// BlogTemplates suggests reading material for a topic without an upstream.
type BlogTemplates struct{}

func (BlogTemplates) Name() string                { return "blog-templates" }
func (BlogTemplates) Category() classify.Category { return classify.Blogs }

func (BlogTemplates) Search(_ context.Context, terms, genre string) ([]normalize.Raw, error) {
	if terms == "" {
		return nil, nil
	}
	title := cases.Title(language.English).String(terms)
	link := "https://medium.com/search?q=" + url.QueryEscape(terms)
	seed := url.PathEscape(terms)
	return []normalize.Raw{
		{
			Title:       "The Complete Guide to " + title,
			Secondary:   genre,
			Description: fmt.Sprintf("Learn everything about %s with practical tips and expert advice.", terms),
			Image:       "https://picsum.photos/seed/" + seed + "/400/300",
			Link:        link,
		},
		{
			Title:       "10 Best Practices for " + title,
			Secondary:   genre,
			Description: fmt.Sprintf("Industry experts share their insights on %s and how to excel in it.", terms),
			Image:       "https://picsum.photos/seed/" + seed + "2/400/300",
			Link:        link,
		},
	}, nil
}
