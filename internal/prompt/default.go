package prompt

// GetDefault returns the built-in summary template
func GetDefault() string {
	return `Here are some {{.Category}} we found for your query '{{.Query}}'. The recommendations include {{.Titles}}.`
}
