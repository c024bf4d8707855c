package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/events"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/logger"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/metrics"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrIncompleteData marks a CV whose extraction did not yield the fields
// required to store a candidate.
var ErrIncompleteData = errors.New("extracted data is missing required fields")

type candidateWriter interface {
	Upsert(ctx context.Context, candidate *models.Candidate) (bool, error)
}

type cvStorage interface {
	Upload(ctx context.Context, bucket string, object string, data []byte, contentType string) (string, error)
}

type cvProcessor interface {
	Process(ctx context.Context, cvText string) (CandidateInfo, error)
}

type textExtractor interface {
	ExtractText(filename string, data []byte) (string, error)
}

type FileUpload struct {
	Name string
	Data []byte
}

type IngestResult struct {
	Candidate *models.Candidate
	Created   bool
}

type BulkItem struct {
	File    string `json:"archivo"`
	Outcome string `json:"resultado"`
	Detail  string `json:"detalle,omitempty"`
}

type BulkSummary struct {
	Success int        `json:"exitosos"`
	Errors  int        `json:"errores"`
	Skipped int        `json:"omitidos"`
	Items   []BulkItem `json:"detalles"`
}

// CVIngestor runs the full pipeline for an uploaded CV: text extraction,
// structured extraction, storage upload and candidate upsert.
type CVIngestor struct {
	bus        EventBus.Bus
	extractor  textExtractor
	processor  cvProcessor
	storage    cvStorage
	candidates candidateWriter
	bucket     string
}

func NewCVIngestor(bus EventBus.Bus, extractor textExtractor, processor cvProcessor,
	storage cvStorage, candidates candidateWriter, bucket string) *CVIngestor {
	return &CVIngestor{
		bus:        bus,
		extractor:  extractor,
		processor:  processor,
		storage:    storage,
		candidates: candidates,
		bucket:     bucket,
	}
}

// Ingest processes a single CV file. A storage failure does not abort the
// ingestion: the candidate is stored without a CV link.
func (s *CVIngestor) Ingest(ctx context.Context, file FileUpload) (*IngestResult, error) {

	start := time.Now()
	text, err := s.extractor.ExtractText(file.Name, file.Data)
	metrics.IngestionStepDuration.WithLabelValues("text_extraction").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.IngestedCVsCounter.WithLabelValues("error").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeExtraction).
			Errorf("failed to extract text from %v: %v", file.Name, err)
		return nil, err
	}

	start = time.Now()
	info, err := s.processor.Process(ctx, text)
	metrics.IngestionStepDuration.WithLabelValues("structured_extraction").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.IngestedCVsCounter.WithLabelValues("error").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("failed to process cv %v: %v", file.Name, err)
		return nil, err
	}

	if !info.HasRequiredFields() {
		metrics.IngestedCVsCounter.WithLabelValues("skipped").Inc()
		log.Warnf("cv %v skipped: missing name, surname or rut", file.Name)
		return nil, errors.Wrap(ErrIncompleteData, file.Name)
	}

	cvURL := s.uploadCV(ctx, info.Rut, file)

	candidate := &models.Candidate{
		Rut:              info.Rut,
		Nombre:           info.Nombre,
		Apellido:         info.Apellido,
		TelefonoPersonal: info.TelefonoPersonal,
		CorreoPersonal:   info.CorreoPersonal,
		CarreraEstudios:  info.CarreraEstudios,
		Experiencia:      info.Experiencia,
		AnosExperiencia:  info.AnosExperiencia,
		Certificaciones:  info.Certificaciones,
		Otros:            info.Otros,
		ResumenIA:        info.ResumenIA,
		CvURL:            cvURL,
		Activo:           true,
		Contratado:       false,
	}

	start = time.Now()
	created, err := s.candidates.Upsert(ctx, candidate)
	metrics.IngestionStepDuration.WithLabelValues("upsert").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.IngestedCVsCounter.WithLabelValues("error").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to upsert candidate from %v: %v", file.Name, err)
		return nil, err
	}

	metrics.IngestedCVsCounter.WithLabelValues("success").Inc()
	s.bus.Publish(events.CandidateIngestedTopic, events.CandidateIngested{
		Rut:      candidate.Rut,
		Nombre:   candidate.Nombre,
		Apellido: candidate.Apellido,
		Updated:  !created,
		CvURL:    deref(cvURL),
	})

	return &IngestResult{Candidate: candidate, Created: created}, nil
}

// IngestAll processes the files strictly in order. A failing file never
// aborts the batch.
func (s *CVIngestor) IngestAll(ctx context.Context, files []FileUpload) BulkSummary {

	summary := BulkSummary{Items: make([]BulkItem, 0, len(files))}

	for _, file := range files {
		result, err := s.Ingest(ctx, file)

		switch {
		case err == nil:
			summary.Success++
			outcome := "creado"
			if !result.Created {
				outcome = "actualizado"
			}
			summary.Items = append(summary.Items, BulkItem{File: file.Name, Outcome: outcome})
		case errors.Is(err, ErrIncompleteData):
			summary.Skipped++
			summary.Items = append(summary.Items, BulkItem{File: file.Name, Outcome: "omitido",
				Detail: "faltan nombre, apellido o RUT"})
		default:
			summary.Errors++
			summary.Items = append(summary.Items, BulkItem{File: file.Name, Outcome: "error", Detail: err.Error()})
		}
	}

	return summary
}

func (s *CVIngestor) uploadCV(ctx context.Context, rut string, file FileUpload) *string {

	if s.storage == nil {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	name := rut
	if name == "" {
		name = uuid.New().String()
	}
	object := fmt.Sprintf("%s_%d%s", name, time.Now().Unix(), ext)

	start := time.Now()
	url, err := s.storage.Upload(ctx, s.bucket, object, file.Data, contentTypeFor(ext))
	metrics.IngestionStepDuration.WithLabelValues("storage_upload").Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to upload cv %v, candidate will be stored without link: %v", file.Name, err)
		return nil
	}
	return &url
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
