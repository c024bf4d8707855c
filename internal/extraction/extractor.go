package extraction

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Service extracts plain text from uploaded CV files, dispatching on the
// file extension. Supported formats are PDF and DOCX.
type Service struct {
}

func NewService() *Service {
	return &Service{}
}

func (s *Service) ExtractText(filename string, data []byte) (string, error) {

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPdfText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", errors.Wrap(ErrUnsupportedFormat, filename)
	}
}
