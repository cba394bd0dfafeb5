package panel

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// TextFromHTML recovers panel text from a saved copy of the directions panel markup.
// Each non-empty text node becomes one line; script and style contents are skipped.
func TextFromHTML(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)

	var lines []string
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()

		// Either we are at the end, or the markup was malformed.
		if tokenType == html.ErrorToken {
			err := tokenizer.Err()
			if err != io.EOF {
				return "", err
			}
			break
		}

		switch tokenType {
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if len(text) > 0 {
				lines = append(lines, text)
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}

func isSkippedTag(name string) bool {
	return name == "script" || name == "style"
}
