// Package prompt renders the human-readable summary attached to discovery results
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// Data is what summary templates can reference
type Data struct {
	Query    string
	Category string
	Titles   string
	Count    int
}

// Generator handles summary generation
type Generator struct {
	tmpl *template.Template
}

// NewGenerator creates a generator from the template file at customPath,
// or from the built-in template when customPath is empty
func NewGenerator(customPath string) (*Generator, error) {
	text := GetDefault()
	if customPath != "" {
		b, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("read summary template: %w", err)
		}
		text = string(b)
	}
	tmpl, err := template.New("summary").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse summary template: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

// Default returns a generator using the built-in template
func Default() *Generator {
	return &Generator{tmpl: template.Must(template.New("summary").Parse(GetDefault()))}
}

// Summary describes a non-empty result list
func (g *Generator) Summary(query, category string, titles []string) string {
	data := Data{Query: query, Category: category, Titles: FormatTitles(titles), Count: len(titles)}
	if data.Category == "" {
		data.Category = "items"
	}
	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Here are some recommendations based on your query: '%s'", query)
	}
	return strings.TrimSpace(buf.String())
}

// NoResults explains an empty result list
func NoResults(query, category string) string {
	if category == "" {
		return "No recommendations found. Try being more specific in your query."
	}
	return fmt.Sprintf("No %s found matching your query. Try a different search term.", category)
}

// FormatTitles quotes up to three titles: 'A', 'B', and 'C'
func FormatTitles(titles []string) string {
	if len(titles) > 3 {
		titles = titles[:3]
	}
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = "'" + t + "'"
	}
	if len(quoted) > 1 {
		quoted[len(quoted)-1] = "and " + quoted[len(quoted)-1]
	}
	return strings.Join(quoted, ", ")
}
