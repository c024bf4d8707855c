package extraction

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_ExtractText_WhenFormatUnsupported_ShouldReturnError(t *testing.T) {

	service := NewService()

	_, err := service.ExtractText("cv.txt", []byte("plain text"))

	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func Test_ExtractText_WhenExtensionUppercase_ShouldDispatch(t *testing.T) {

	service := NewService()

	_, err := service.ExtractText("CV.PDF", []byte("not a real pdf"))

	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))
}

func Test_ParseDocxContent_ShouldJoinRunsAndParagraphs(t *testing.T) {

	content := `<w:p><w:r><w:t>Juan </w:t></w:r><w:r><w:t xml:space="preserve">P&#233;rez</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Ingeniero Civil</w:t></w:r></w:p>` +
		`<w:p></w:p>`

	assert.Equal(t, "Juan Pérez\nIngeniero Civil", parseDocxContent(content))
}

func Test_ParseDocxContent_WhenNoTextRuns_ShouldReturnEmpty(t *testing.T) {

	assert.Equal(t, "", parseDocxContent(`<w:p><w:pPr></w:pPr></w:p>`))
}
