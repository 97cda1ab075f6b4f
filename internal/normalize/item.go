// Package normalize converts source-specific records into the single
// item shape returned to clients.
package normalize

import (
	"fmt"
	"strings"

	"github.com/briangreenhill/recogate/internal/classify"
)

// BandWidth is the size of each category's id range.
const BandWidth = 1000

// Item is a recommendation as returned to clients. ID is unique within
// one response; the upstream identifier, if any, is kept in SourceID.
type Item struct {
	ID          int      `json:"id"`
	SourceID    string   `json:"source_id,omitempty"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Rating      float64  `json:"rating"`
	Year        string   `json:"year,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Link        string   `json:"link,omitempty"`
	Type        string   `json:"type"`
}

// Raw is the loosely typed record a source hands to Normalize.
// Secondary carries genre, topic or product category depending on the source.
type Raw struct {
	SourceID    string
	Title       string
	Secondary   string
	Author      string
	Description string
	Image       string
	Rating      float64
	Year        string
	Price       float64
	Tags        []string
	Link        string
}

// BandStart returns the first id of the category's range.
func BandStart(c classify.Category) int {
	switch c {
	case classify.Books:
		return 1*BandWidth + 1
	case classify.Products:
		return 2*BandWidth + 1
	case classify.Blogs:
		return 3*BandWidth + 1
	default:
		return 1
	}
}

// Normalize builds the item at position index of a category's result list.
// Records without a title are rejected.
func Normalize(raw Raw, c classify.Category, index int) (Item, bool) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return Item{}, false
	}

	it := Item{
		ID:          BandStart(c) + index,
		SourceID:    raw.SourceID,
		Title:       title,
		Genre:       raw.Secondary,
		Author:      raw.Author,
		Description: strings.TrimSpace(raw.Description),
		Image:       raw.Image,
		Rating:      raw.Rating,
		Year:        raw.Year,
		Price:       raw.Price,
		Tags:        raw.Tags,
		Link:        raw.Link,
		Type:        c.TypeTag(),
	}
	if it.Description == "" {
		it.Description = describe(it, c)
	}
	return it, true
}

// All normalizes raws in order, dropping rejected records. Ids are
// assigned from the position in the output so they stay dense.
func All(raws []Raw, c classify.Category) []Item {
	out := make([]Item, 0, len(raws))
	for _, r := range raws {
		if it, ok := Normalize(r, c, len(out)); ok {
			out = append(out, it)
		}
	}
	return out
}

func describe(it Item, c classify.Category) string {
	switch c {
	case classify.Books:
		return fmt.Sprintf("Book by %s: %s (%s).", orUnknown(it.Author), it.Title, it.Genre)
	case classify.Products:
		return fmt.Sprintf("Product: %s (%s).", it.Title, it.Genre)
	case classify.Blogs:
		return fmt.Sprintf("Blog post: %s (%s).", it.Title, it.Genre)
	default:
		if it.Genre == "" {
			return fmt.Sprintf("%s is a highly rated movie.", it.Title)
		}
		return fmt.Sprintf("%s is a highly rated %s movie.", it.Title, it.Genre)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown Author"
	}
	return s
}

// PlaceholderImage returns a generated cover image for title.
func PlaceholderImage(title string) string {
	return "https://placehold.co/400x600?text=" + strings.ReplaceAll(title, " ", "+")
}
