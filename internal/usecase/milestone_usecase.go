package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"tovyalla_billing/internal/domain/entities"
	"tovyalla_billing/internal/usecase/interfaces"
)

var (
	ErrInvalidMilestoneType = errors.New("invalid milestone type")
	ErrMilestoneNotFound    = errors.New("milestone not found")
)

// IMilestoneUseCase exposes the saved milestone records of a project.
//
// Replace is the PUT semantics the document flow depends on: the supplied
// records fully overwrite whatever was stored for the project.

type IMilestoneUseCase interface {
	ListByProjectID(ctx context.Context, projectID string) ([]entities.MilestoneRecord, error)
	Replace(ctx context.Context, projectID string, records []entities.MilestoneRecord) ([]entities.MilestoneRecord, error)
}

type MilestoneUseCase struct {
	repo interfaces.IMilestoneRepository
}

var _ IMilestoneUseCase = (*MilestoneUseCase)(nil)

func NewMilestoneUseCase(repo interfaces.IMilestoneRepository) *MilestoneUseCase {
	return &MilestoneUseCase{repo: repo}
}

func (u *MilestoneUseCase) ListByProjectID(ctx context.Context, projectID string) ([]entities.MilestoneRecord, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	return u.repo.ListByProjectID(ctx, projectID)
}

func (u *MilestoneUseCase) Replace(ctx context.Context, projectID string, records []entities.MilestoneRecord) ([]entities.MilestoneRecord, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	for _, rec := range records {
		if _, ok := entities.ParseMilestoneType(string(rec.MilestoneType)); !ok {
			log.Printf("[milestone][usecase] replace rejected project_id=%s bad_type=%q", projectID, rec.MilestoneType)
			return nil, ErrInvalidMilestoneType
		}
	}

	if err := u.repo.ReplaceForProject(ctx, projectID, records); err != nil {
		log.Printf("[milestone][usecase] replace failed project_id=%s err=%v", projectID, err)
		return nil, err
	}
	log.Printf("[milestone][usecase] replace success project_id=%s records=%d", projectID, len(records))
	return records, nil
}
