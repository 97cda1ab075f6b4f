package recommend

import (
	"errors"
	"strings"

	"github.com/briangreenhill/recogate/internal/catalog"
	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/normalize"
)

const perUserLimit = 5

var ErrUnknownUser = errors.New("unknown user")

// ForUser picks up to five static items of category that suit the user's
// preferences. When nothing matches, the whole dataset is eligible.
// The order is shuffled on every call.
func (s *Service) ForUser(category, username string) ([]normalize.Item, error) {
	c, err := classify.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	u, ok := catalog.FindUser(username)
	if !ok {
		return nil, ErrUnknownUser
	}

	items := Static(c)
	matched := make([]normalize.Item, 0, len(items))
	for _, it := range items {
		if prefers(u.Preferences, it) {
			matched = append(matched, it)
		}
	}
	if len(matched) == 0 {
		matched = items
	}

	s.randMu.Lock()
	s.rand.Shuffle(len(matched), func(i, j int) { matched[i], matched[j] = matched[j], matched[i] })
	s.randMu.Unlock()

	if len(matched) > perUserLimit {
		matched = matched[:perUserLimit]
	}
	return matched, nil
}

// prefers is true when the item's genre is preferred or one of the
// keywords appears in its title, author, genre or tags. An empty preference
// list counts as a match for that half.
func prefers(p catalog.Preferences, it normalize.Item) bool {
	genreMatch := len(p.Genres) == 0
	for _, g := range p.Genres {
		if strings.EqualFold(g, it.Genre) {
			genreMatch = true
			break
		}
	}
	if genreMatch {
		return true
	}
	if len(p.Keywords) == 0 {
		return true
	}

	text := strings.ToLower(it.Title + " " + it.Author + " " + it.Genre)
	for _, kw := range p.Keywords {
		kw = strings.ToLower(kw)
		if strings.Contains(text, kw) {
			return true
		}
		for _, tag := range it.Tags {
			if strings.ToLower(tag) == kw {
				return true
			}
		}
	}
	return false
}
