package extraction

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/pkg/errors"
)

var docxTextRunPattern = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

func extractDocxText(data []byte) (string, error) {

	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "failed to open docx")
	}
	defer reader.Close()

	result := parseDocxContent(reader.Editable().GetContent())
	if result == "" {
		return "", errors.New("docx contains no extractable text")
	}
	return result, nil
}

// parseDocxContent collects the text runs of the document XML, one output
// line per paragraph.
func parseDocxContent(content string) string {

	var lines []string
	for _, paragraph := range strings.Split(content, "</w:p>") {

		matches := docxTextRunPattern.FindAllStringSubmatch(paragraph, -1)
		if len(matches) == 0 {
			continue
		}

		var sb strings.Builder
		for _, match := range matches {
			sb.WriteString(html.UnescapeString(match[1]))
		}

		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}
