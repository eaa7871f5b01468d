package topics

// Renderer turns a raw topic body into what gets printed. The format
// argument carries the source file's extension (".md", ".txt") so a
// renderer can decide whether to touch the content at all.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics verbatim. It is the fallback when no
// renderer is configured in Options.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
