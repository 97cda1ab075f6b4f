package normalize

import (
	"strconv"

	"github.com/briangreenhill/recogate/internal/catalog"
)

func FromMovie(m catalog.Movie) Raw {
	year := ""
	if m.Year > 0 {
		year = strconv.Itoa(m.Year)
	}
	return Raw{
		Title:     m.Title,
		Secondary: m.Genre,
		Image:     PlaceholderImage(m.Title),
		Rating:    m.Rating,
		Year:      year,
	}
}

func FromBook(b catalog.Book) Raw {
	return Raw{
		Title:     b.Title,
		Secondary: b.Genre,
		Author:    b.Author,
		Image:     PlaceholderImage(b.Title),
		Rating:    b.Rating,
	}
}

func FromProduct(p catalog.Product) Raw {
	return Raw{
		Title:     p.Name,
		Secondary: p.Category,
		Image:     PlaceholderImage(p.Name),
		Price:     p.Price,
	}
}

func FromBlog(b catalog.Blog) Raw {
	return Raw{
		Title:     b.Title,
		Secondary: b.Topic,
		Image:     PlaceholderImage(b.Title),
		Tags:      b.Tags,
	}
}
