package topics

// Renderer formats topic content for the terminal. format is the topic
// file's extension, dot included.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics as written
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
