package services

import (
	"context"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) GenerateJSON(ctx context.Context, system string, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

type mockCandidateRepository struct {
	mock.Mock
}

func (m *mockCandidateRepository) GetAvailable(ctx context.Context) ([]models.Candidate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Candidate), args.Error(1)
}

type mockCandidateWriter struct {
	mock.Mock
}

func (m *mockCandidateWriter) Upsert(ctx context.Context, candidate *models.Candidate) (bool, error) {
	args := m.Called(ctx, candidate)
	return args.Bool(0), args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, bucket string, object string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, bucket, object, data, contentType)
	return args.String(0), args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, cvText string) (CandidateInfo, error) {
	args := m.Called(ctx, cvText)
	return args.Get(0).(CandidateInfo), args.Error(1)
}

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) ExtractText(filename string, data []byte) (string, error) {
	args := m.Called(filename, data)
	return args.String(0), args.Error(1)
}

type mockProjectReader struct {
	mock.Mock
}

func (m *mockProjectReader) GetActive(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Project), args.Error(1)
}

type mockAssignedReader struct {
	mock.Mock
}

func (m *mockAssignedReader) GetByProjectIDs(ctx context.Context, projectIDs []int) ([]models.Candidate, error) {
	args := m.Called(ctx, projectIDs)
	return args.Get(0).([]models.Candidate), args.Error(1)
}
