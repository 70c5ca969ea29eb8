package changelog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
)

// RenderHTML converts an extracted entry from markdown to an HTML fragment.
func RenderHTML(entry string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(entry), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
