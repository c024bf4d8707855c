package extraction

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	pdfextractor "github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

func extractPdfText(data []byte) (string, error) {

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "failed to open pdf")
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", errors.Wrap(err, "failed to get pdf page count")
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {

		page, err := reader.GetPage(i)
		if err != nil {
			log.Warnf("failed to read pdf page %d: %v", i, err)
			continue
		}

		ex, err := pdfextractor.New(page)
		if err != nil {
			log.Warnf("failed to create extractor for pdf page %d: %v", i, err)
			continue
		}

		text, err := ex.ExtractText()
		if err != nil {
			log.Warnf("failed to extract text from pdf page %d: %v", i, err)
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", errors.New("pdf contains no extractable text")
	}
	return result, nil
}
