package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// maxCVTextLength caps the CV text sent to the extraction backend, in runes.
const maxCVTextLength = 4000

type aiClient interface {
	GenerateJSON(ctx context.Context, system string, user string) (string, error)
}

// CandidateInfo is the structured result of CV extraction. Field names match
// the JSON schema requested from the extraction backend.
type CandidateInfo struct {
	Nombre           string  `json:"nombre"`
	Apellido         string  `json:"apellido"`
	Rut              string  `json:"rut"`
	TelefonoPersonal *string `json:"telefono_personal"`
	CorreoPersonal   *string `json:"correo_personal"`
	CarreraEstudios  *string `json:"carrera_estudios"`
	Experiencia      *string `json:"experiencia"`
	AnosExperiencia  *int    `json:"anos_experiencia" validate:"omitempty,gte=0"`
	Certificaciones  *string `json:"certificaciones"`
	Otros            *string `json:"otros"`
	ResumenIA        *string `json:"resumen_ia"`
}

const extractionSystemPrompt = "Eres un asistente que extrae información estructurada de currículums. " +
	"Respondes únicamente con un objeto JSON válido, sin texto adicional."

const extractionUserPromptHeader = `Extrae la siguiente información del currículum y responde con un objeto JSON con exactamente estas claves:
{
  "nombre": "primer nombre",
  "apellido": "apellidos",
  "rut": "RUT chileno si aparece, o null",
  "telefono_personal": "teléfono de contacto o null",
  "correo_personal": "correo electrónico o null",
  "carrera_estudios": "carrera o estudios principales o null",
  "experiencia": "resumen breve de la experiencia laboral o null",
  "anos_experiencia": años de experiencia como número entero o null,
  "certificaciones": "certificaciones relevantes o null",
  "otros": "otra información relevante o null",
  "resumen_ia": "resumen profesional de 2-3 frases o null"
}
Usa null para los campos que no aparezcan en el texto.

Currículum:
`

// CVProcessor turns raw CV text into a structured candidate via the AI
// backend.
type CVProcessor struct {
	ai       aiClient
	validate *validator.Validate
}

func NewCVProcessor(ai aiClient) *CVProcessor {
	return &CVProcessor{
		ai:       ai,
		validate: validator.New(),
	}
}

// Process extracts candidate fields from the CV text. The text is truncated
// before sending. On any backend or parse failure the zero CandidateInfo is
// returned together with the error.
func (p *CVProcessor) Process(ctx context.Context, cvText string) (CandidateInfo, error) {

	runes := []rune(cvText)
	if len(runes) > maxCVTextLength {
		log.Infof("truncating cv text from %d to %d characters", len(runes), maxCVTextLength)
		runes = runes[:maxCVTextLength]
	}

	response, err := p.ai.GenerateJSON(ctx, extractionSystemPrompt, extractionUserPromptHeader+string(runes))
	if err != nil {
		return CandidateInfo{}, errors.Wrap(err, "extraction request failed")
	}

	var info CandidateInfo
	if err = json.Unmarshal([]byte(cleanJSONResponse(response)), &info); err != nil {
		return CandidateInfo{}, errors.Wrap(err, "failed to parse extraction response")
	}

	if err = p.validate.Struct(info); err != nil {
		return CandidateInfo{}, errors.Wrap(err, "extraction response failed validation")
	}

	info.Rut = models.NormalizeRut(info.Rut)
	return info, nil
}

// HasRequiredFields reports whether the extraction produced enough data to
// store the candidate.
func (info CandidateInfo) HasRequiredFields() bool {
	return info.Nombre != "" && info.Apellido != "" && info.Rut != ""
}

// cleanJSONResponse strips markdown code fences that models sometimes wrap
// around JSON output.
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
