package services

import (
	"context"
	"strings"
	"testing"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/events"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validInfo() CandidateInfo {
	return CandidateInfo{Nombre: "Juan", Apellido: "Pérez", Rut: "12345678"}
}

func newIngestorMocks() (*mockExtractor, *mockProcessor, *mockStorage, *mockCandidateWriter) {
	return &mockExtractor{}, &mockProcessor{}, &mockStorage{}, &mockCandidateWriter{}
}

func Test_Ingest_WhenSucceeds_ShouldUpsertAndPublishEvent(t *testing.T) {

	extractor, processor, storage, writer := newIngestorMocks()
	extractor.On("ExtractText", "cv.pdf", mock.Anything).Return("texto del cv", nil)
	processor.On("Process", mock.Anything, "texto del cv").Return(validInfo(), nil)
	storage.On("Upload", mock.Anything, "cvs", mock.MatchedBy(func(object string) bool {
		return strings.HasPrefix(object, "12345678_") && strings.HasSuffix(object, ".pdf")
	}), mock.Anything, "application/pdf").
		Return("https://storage/cv_12345678.pdf", nil)
	writer.On("Upsert", mock.Anything, mock.Anything).Return(true, nil)

	published := 0
	bus := EventBus.New()
	_ = bus.Subscribe(events.CandidateIngestedTopic, func(e events.CandidateIngested) {
		published++
		assert.Equal(t, "12345678", e.Rut)
		assert.False(t, e.Updated)
	})

	ingestor := NewCVIngestor(bus, extractor, processor, storage, writer, "cvs")
	result, err := ingestor.Ingest(context.Background(), FileUpload{Name: "cv.pdf", Data: []byte("pdf")})

	assert.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "https://storage/cv_12345678.pdf", *result.Candidate.CvURL)
	assert.True(t, result.Candidate.Activo)
	assert.False(t, result.Candidate.Contratado)
	assert.Equal(t, 1, published)
}

func Test_Ingest_WhenStorageFails_ShouldStoreCandidateWithoutLink(t *testing.T) {

	extractor, processor, storage, writer := newIngestorMocks()
	extractor.On("ExtractText", "cv.pdf", mock.Anything).Return("texto del cv", nil)
	processor.On("Process", mock.Anything, mock.Anything).Return(validInfo(), nil)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unreachable"))
	writer.On("Upsert", mock.Anything, mock.MatchedBy(func(c *models.Candidate) bool {
		return c.CvURL == nil
	})).Return(true, nil)

	ingestor := NewCVIngestor(EventBus.New(), extractor, processor, storage, writer, "cvs")
	result, err := ingestor.Ingest(context.Background(), FileUpload{Name: "cv.pdf", Data: []byte("pdf")})

	assert.NoError(t, err)
	assert.Nil(t, result.Candidate.CvURL)
	writer.AssertExpectations(t)
}

func Test_Ingest_WhenRequiredFieldsMissing_ShouldSkip(t *testing.T) {

	extractor, processor, storage, writer := newIngestorMocks()
	extractor.On("ExtractText", "cv.pdf", mock.Anything).Return("texto del cv", nil)
	processor.On("Process", mock.Anything, mock.Anything).Return(CandidateInfo{Nombre: "Juan"}, nil)

	ingestor := NewCVIngestor(EventBus.New(), extractor, processor, storage, writer, "cvs")
	_, err := ingestor.Ingest(context.Background(), FileUpload{Name: "cv.pdf", Data: []byte("pdf")})

	assert.True(t, errors.Is(err, ErrIncompleteData))
	writer.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_IngestAll_ShouldIsolateFailuresPerFile(t *testing.T) {

	extractor, processor, storage, writer := newIngestorMocks()

	extractor.On("ExtractText", "bueno.pdf", mock.Anything).Return("texto", nil)
	extractor.On("ExtractText", "roto.pdf", mock.Anything).Return("", errors.New("corrupt file"))
	extractor.On("ExtractText", "incompleto.docx", mock.Anything).Return("texto", nil)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(validInfo(), nil).Once()
	processor.On("Process", mock.Anything, mock.Anything).
		Return(CandidateInfo{}, nil).Once()

	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("https://storage/cv.pdf", nil)
	writer.On("Upsert", mock.Anything, mock.Anything).Return(false, nil)

	ingestor := NewCVIngestor(EventBus.New(), extractor, processor, storage, writer, "cvs")
	summary := ingestor.IngestAll(context.Background(), []FileUpload{
		{Name: "bueno.pdf", Data: []byte("a")},
		{Name: "roto.pdf", Data: []byte("b")},
		{Name: "incompleto.docx", Data: []byte("c")},
	})

	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, summary.Items, 3)
	assert.Equal(t, "actualizado", summary.Items[0].Outcome)
	assert.Equal(t, "error", summary.Items[1].Outcome)
	assert.Equal(t, "omitido", summary.Items[2].Outcome)
}
