package services

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func availableCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: 1, Rut: "11111111", Nombre: "Ana", Apellido: "Soto", Activo: true},
		{ID: 2, Rut: "22222222", Nombre: "Benito", Apellido: "Rojas", Activo: true},
		{ID: 3, Rut: "33333333", Nombre: "Carla", Apellido: "Muñoz", Activo: true},
	}
}

func Test_Find_ShouldOrderByResponseThenOmittedWithZeroRelevance(t *testing.T) {

	repo := &mockCandidateRepository{}
	repo.On("GetAvailable", mock.Anything).Return(availableCandidates(), nil)

	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"candidatos":[{"id":3,"relevancia":9,"razon":"experiencia directa"},{"id":1,"relevancia":4,"razon":"perfil parcial"}]}`, nil)

	finder := NewCandidateFinder(ai, repo)
	ranked, err := finder.Find(context.Background(), "obra vial")

	assert.NoError(t, err)
	assert.Len(t, ranked, 3)
	assert.Equal(t, 3, ranked[0].ID)
	assert.Equal(t, 9, ranked[0].Relevancia)
	assert.Equal(t, 1, ranked[1].ID)
	assert.Equal(t, 2, ranked[2].ID)
	assert.Equal(t, 0, ranked[2].Relevancia)
	assert.Empty(t, ranked[2].Razon)
}

func Test_Find_WhenNoAvailableCandidates_ShouldNotCallBackend(t *testing.T) {

	repo := &mockCandidateRepository{}
	repo.On("GetAvailable", mock.Anything).Return([]models.Candidate{}, nil)

	ai := &mockAiClient{}

	finder := NewCandidateFinder(ai, repo)
	ranked, err := finder.Find(context.Background(), "obra vial")

	assert.NoError(t, err)
	assert.Empty(t, ranked)
	ai.AssertNotCalled(t, "GenerateJSON", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Find_WhenBackendFails_ShouldReturnError(t *testing.T) {

	repo := &mockCandidateRepository{}
	repo.On("GetAvailable", mock.Anything).Return(availableCandidates(), nil)

	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("backend unavailable"))

	finder := NewCandidateFinder(ai, repo)
	_, err := finder.Find(context.Background(), "obra vial")

	assert.Error(t, err)
}

func Test_Find_WhenResponseMalformed_ShouldReturnError(t *testing.T) {

	repo := &mockCandidateRepository{}
	repo.On("GetAvailable", mock.Anything).Return(availableCandidates(), nil)

	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).
		Return("los mejores candidatos son Ana y Carla", nil)

	finder := NewCandidateFinder(ai, repo)
	_, err := finder.Find(context.Background(), "obra vial")

	assert.Error(t, err)
}

func Test_Find_ShouldTolerateDuplicateAndUnknownIDs(t *testing.T) {

	repo := &mockCandidateRepository{}
	repo.On("GetAvailable", mock.Anything).Return(availableCandidates(), nil)

	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"candidatos":[{"id":2,"relevancia":8},{"id":2,"relevancia":1},{"id":99,"relevancia":5},{"id":1,"relevancia":3}]}`, nil)

	finder := NewCandidateFinder(ai, repo)
	ranked, err := finder.Find(context.Background(), "obra vial")

	assert.NoError(t, err)
	assert.Len(t, ranked, 3)
	assert.Equal(t, 2, ranked[0].ID)
	assert.Equal(t, 8, ranked[0].Relevancia)
	assert.Equal(t, 1, ranked[1].ID)
	assert.Equal(t, 3, ranked[2].ID)
}

func Test_Find_ShouldCacheResultByDescription(t *testing.T) {

	repo := &mockCandidateRepository{}
	repo.On("GetAvailable", mock.Anything).Return(availableCandidates(), nil)

	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"candidatos":[{"id":1,"relevancia":5}]}`, nil).Once()

	finder := NewCandidateFinder(ai, repo)

	first, err := finder.Find(context.Background(), "obra vial")
	assert.NoError(t, err)
	second, err := finder.Find(context.Background(), "obra vial")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	ai.AssertNumberOfCalls(t, "GenerateJSON", 1)
}

func Test_BuildCandidatesContext_WhenOverBudget_ShouldKeepEveryCandidate(t *testing.T) {

	longText := strings.Repeat("experiencia en obras de gran envergadura ", 300)
	var candidates []models.Candidate
	for i := 1; i <= 40; i++ {
		candidates = append(candidates, models.Candidate{
			ID: i, Rut: "11111111", Nombre: "Persona", Apellido: "Prueba",
			Experiencia: &longText, Activo: true,
		})
	}

	result := buildCandidatesContext(candidates)

	assert.Less(t, len([]rune(result)), contextCharsBudget)
	for i := 1; i <= 40; i++ {
		assert.Contains(t, result, "ID: "+strconv.Itoa(i))
	}
	assert.NotContains(t, result, "Experiencia:")
}

func Test_DegradeCandidateParagraph_ShouldTruncateLongLines(t *testing.T) {

	career := strings.Repeat("Ingeniería ", 50)
	c := models.Candidate{ID: 1, Rut: "11111111", Nombre: "Ana", CarreraEstudios: &career}

	degraded := degradeCandidateParagraph(&c)

	for _, line := range strings.Split(strings.TrimRight(degraded, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), degradedMaxLineLength)
	}
}
