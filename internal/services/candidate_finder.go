package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// contextCharsBudget is the soft cap, in runes, for the candidates context
// sent to the ranking backend.
const contextCharsBudget = 100000

// Limits applied when the context has to be degraded to fit the budget.
const (
	degradedMaxLineLength        = 200
	degradedMaxLinesPerCandidate = 15
)

type candidateRepository interface {
	GetAvailable(ctx context.Context) ([]models.Candidate, error)
}

type rankedCandidateResponse struct {
	ID         int    `json:"id"`
	Relevancia int    `json:"relevancia"`
	Razon      string `json:"razon"`
}

type rankingResponse struct {
	Candidatos []rankedCandidateResponse `json:"candidatos"`
}

// CandidateFinder ranks available candidates against a free-text project
// description using the AI backend.
type CandidateFinder struct {
	ai         aiClient
	candidates candidateRepository
	cache      *gocache.Cache
}

func NewCandidateFinder(ai aiClient, candidates candidateRepository) *CandidateFinder {
	return &CandidateFinder{
		ai:         ai,
		candidates: candidates,
		cache:      gocache.New(10*time.Minute, 20*time.Minute),
	}
}

// Find returns every available candidate ordered by relevance to the
// description. Candidates the backend omits come last with relevance 0. When
// the backend fails or returns an unparseable response, an error is returned
// and no partial ranking is produced.
func (f *CandidateFinder) Find(ctx context.Context, description string) ([]models.RankedCandidate, error) {

	metrics.SearchesCounter.Inc()

	cacheID := createSearchCacheID(description)
	if cached, found := f.cache.Get(cacheID); found {
		return cached.([]models.RankedCandidate), nil
	}

	candidates, err := f.candidates.GetAvailable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get available candidates")
	}

	if len(candidates) == 0 {
		return []models.RankedCandidate{}, nil
	}

	start := time.Now()
	ranked, err := f.rank(ctx, description, candidates)
	metrics.RankingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}

	if cacheErr := f.cache.Add(cacheID, ranked, gocache.DefaultExpiration); cacheErr != nil {
		log.Errorf("failed to add ranking to cache: %v", cacheErr)
	}
	return ranked, nil
}

func (f *CandidateFinder) rank(ctx context.Context, description string,
	candidates []models.Candidate) ([]models.RankedCandidate, error) {

	response, err := f.ai.GenerateJSON(ctx, rankingSystemPrompt, f.buildRankingRequest(description, candidates))
	if err != nil {
		return nil, errors.Wrap(err, "ranking request failed")
	}

	var parsed rankingResponse
	if err = json.Unmarshal([]byte(cleanJSONResponse(response)), &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to parse ranking response")
	}

	return reconcileRanking(candidates, parsed), nil
}

const rankingSystemPrompt = "Eres un asistente de recursos humanos que evalúa la idoneidad de candidatos " +
	"para proyectos de ingeniería. Respondes únicamente con un objeto JSON válido."

func (f *CandidateFinder) buildRankingRequest(description string, candidates []models.Candidate) string {

	var sb strings.Builder
	sb.WriteString("Descripción del proyecto:\n")
	sb.WriteString(description)
	sb.WriteString(fmt.Sprintf("\n\nHay %d candidatos disponibles. Evalúa a TODOS según su idoneidad para el proyecto. "+
		"Usa la relevancia para el proyecto como criterio principal y la puntuación de calidad como criterio secundario.\n", len(candidates)))
	sb.WriteString(`Responde con un objeto JSON con esta forma exacta:
{"candidatos": [{"id": <id del candidato>, "relevancia": <1-10>, "razon": "<justificación breve>"}]}
Ordena los candidatos de mayor a menor idoneidad.

Candidatos:
`)
	sb.WriteString(buildCandidatesContext(candidates))
	return sb.String()
}

// buildCandidatesContext renders one paragraph per candidate. When the full
// rendering exceeds the budget, every candidate is rendered in the degraded
// short form instead. Candidates are never dropped to fit the budget.
func buildCandidatesContext(candidates []models.Candidate) string {

	paragraphs := make([]string, len(candidates))
	total := 0
	for i := range candidates {
		paragraphs[i] = candidateParagraph(&candidates[i])
		total += len([]rune(paragraphs[i]))
	}

	if total > contextCharsBudget {
		log.Infof("candidates context of %d chars exceeds budget, degrading to short form", total)
		for i := range candidates {
			paragraphs[i] = degradeCandidateParagraph(&candidates[i])
		}
	}

	return strings.Join(paragraphs, "\n")
}

func candidateParagraph(c *models.Candidate) string {

	var sb strings.Builder
	writeLine := func(label string, value string) {
		if value != "" {
			sb.WriteString(label)
			sb.WriteString(": ")
			sb.WriteString(value)
			sb.WriteString("\n")
		}
	}

	writeLine("ID", fmt.Sprintf("%d", c.ID))
	writeLine("Nombre", c.FullName())
	writeLine("RUT", c.Rut)
	writeLine("Carrera/Estudios", deref(c.CarreraEstudios))
	writeLine("Años de experiencia", intString(c.AnosExperiencia))
	writeLine("Experiencia", deref(c.Experiencia))
	writeLine("Certificaciones", deref(c.Certificaciones))
	writeLine("Resumen", deref(c.ResumenIA))
	writeLine("Otros", deref(c.Otros))
	writeLine("Puntuación de Calidad", intString(c.PuntuacionCalidad))
	return sb.String()
}

// degradeCandidateParagraph renders the compact form used when the context
// exceeds the budget. Only identity and scoring fields survive, each line is
// truncated and the number of lines per candidate is capped.
func degradeCandidateParagraph(c *models.Candidate) string {

	lines := []string{
		"ID: " + fmt.Sprintf("%d", c.ID),
		"Nombre: " + c.FullName(),
		"RUT: " + c.Rut,
		"Carrera/Estudios: " + deref(c.CarreraEstudios),
		"Años de experiencia: " + intString(c.AnosExperiencia),
		"Certificaciones: " + deref(c.Certificaciones),
		"Puntuación de Calidad: " + intString(c.PuntuacionCalidad),
	}

	var kept []string
	for _, line := range lines {
		if len(kept) == degradedMaxLinesPerCandidate {
			break
		}
		runes := []rune(line)
		if len(runes) > degradedMaxLineLength {
			line = string(runes[:degradedMaxLineLength])
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n") + "\n"
}

// reconcileRanking turns the backend response into a total order over the
// fetched candidates. Response entries come first in response order; unknown
// ids and duplicates are skipped; candidates the response omitted follow in
// fetch order with relevance 0.
func reconcileRanking(candidates []models.Candidate, parsed rankingResponse) []models.RankedCandidate {

	byID := make(map[int]*models.Candidate, len(candidates))
	for i := range candidates {
		byID[candidates[i].ID] = &candidates[i]
	}

	result := make([]models.RankedCandidate, 0, len(candidates))
	seen := make(map[int]bool, len(candidates))

	for _, entry := range parsed.Candidatos {
		candidate, known := byID[entry.ID]
		if !known {
			log.Warnf("ranking response references unknown candidate id %d", entry.ID)
			continue
		}
		if seen[entry.ID] {
			log.Warnf("ranking response contains duplicate candidate id %d", entry.ID)
			continue
		}
		seen[entry.ID] = true
		result = append(result, models.RankedCandidate{
			Candidate:  *candidate,
			Relevancia: entry.Relevancia,
			Razon:      entry.Razon,
		})
	}

	for i := range candidates {
		if !seen[candidates[i].ID] {
			result = append(result, models.RankedCandidate{Candidate: candidates[i]})
		}
	}

	return result
}

func createSearchCacheID(description string) string {
	hash := sha256.Sum256([]byte(description))
	return hex.EncodeToString(hash[:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intString(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
