package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetsAreCopies(t *testing.T) {
	m := Movies()
	m[0].Title = "changed"
	assert.Equal(t, "Interstellar", Movies()[0].Title)
}

func TestDatasetsNonEmptyTitles(t *testing.T) {
	for _, m := range Movies() {
		assert.NotEmpty(t, m.Title)
	}
	for _, b := range Books() {
		assert.NotEmpty(t, b.Title)
	}
	for _, b := range Blogs() {
		assert.NotEmpty(t, b.Title)
	}
	for _, p := range Products() {
		assert.NotEmpty(t, p.Name)
	}
}

func TestCuratedByID(t *testing.T) {
	c, ok := CuratedByID(106)
	assert.True(t, ok)
	assert.Equal(t, "Dune", c.Title)

	_, ok = CuratedByID(999)
	assert.False(t, ok)
	assert.Len(t, CuratedList(), 6)
}

func TestFindUser(t *testing.T) {
	u, ok := FindUser("AAYUSH")
	assert.True(t, ok)
	assert.Equal(t, 1, u.ID)

	_, ok = FindUser("nobody")
	assert.False(t, ok)
}
