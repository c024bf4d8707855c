package services

import (
	"context"
	"sort"
	"time"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/logger"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type projectReader interface {
	GetActive(ctx context.Context) ([]models.Project, error)
}

type assignedCandidateReader interface {
	GetByProjectIDs(ctx context.Context, projectIDs []int) ([]models.Candidate, error)
}

type EndingProject struct {
	Project       models.Project     `json:"proyecto"`
	DaysRemaining int                `json:"dias_restantes"`
	Personnel     []models.Candidate `json:"personal"`
}

// RotationsReporter finds active projects ending within the horizon and the
// personnel that will be freed when they do.
type RotationsReporter struct {
	projects      projectReader
	candidates    assignedCandidateReader
	horizonInDays int
	scheduler     *cron.Cron
}

func NewRotationsReporter(projects projectReader, candidates assignedCandidateReader,
	horizonInDays int) *RotationsReporter {
	return &RotationsReporter{
		projects:      projects,
		candidates:    candidates,
		horizonInDays: horizonInDays,
	}
}

// Report returns the active projects whose end date falls between now and the
// horizon, sorted by days remaining, each with its assigned active personnel.
func (r *RotationsReporter) Report(ctx context.Context, now time.Time) ([]EndingProject, error) {

	projects, err := r.projects.GetActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active projects")
	}

	var ending []EndingProject
	for i := range projects {
		days, hasEnd := projects[i].DaysUntilEnd(now)
		if !hasEnd || days < 0 || days > r.horizonInDays {
			continue
		}
		ending = append(ending, EndingProject{Project: projects[i], DaysRemaining: days})
	}

	if len(ending) == 0 {
		metrics.EndingProjectsGauge.Set(0)
		return []EndingProject{}, nil
	}

	projectIDs := lo.Map(ending, func(e EndingProject, _ int) int { return e.Project.ID })
	assigned, err := r.candidates.GetByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get assigned personnel")
	}

	byProject := make(map[int][]models.Candidate)
	for _, candidate := range assigned {
		if candidate.ProyectoID == nil {
			continue
		}
		byProject[*candidate.ProyectoID] = append(byProject[*candidate.ProyectoID], candidate)
	}

	for i := range ending {
		ending[i].Personnel = byProject[ending[i].Project.ID]
	}

	sort.SliceStable(ending, func(i, j int) bool {
		return ending[i].DaysRemaining < ending[j].DaysRemaining
	})

	metrics.EndingProjectsGauge.Set(float64(len(ending)))
	return ending, nil
}

// StartScheduler logs the rotation report every morning.
func (r *RotationsReporter) StartScheduler() error {

	r.scheduler = cron.New()
	_, err := r.scheduler.AddFunc("0 8 * * *", func() {
		report, err := r.Report(context.Background(), time.Now())
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("scheduled rotations report failed: %v", err)
			return
		}
		log.Infof("rotations report: %d projects ending within %d days", len(report), r.horizonInDays)
		for _, e := range report {
			log.Infof("project %v ends in %d days, frees %d people",
				e.Project.Nombre, e.DaysRemaining, len(e.Personnel))
		}
	})
	if err != nil {
		return err
	}

	r.scheduler.Start()
	return nil
}

func (r *RotationsReporter) StopScheduler() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
