package services

import (
	"errors"
	"strings"
	"time"

	"freetrack/internal/models"
	"freetrack/internal/repositories"
)

type SourceService struct {
	Repo *repositories.SourceRepository
}

func NewSourceService(repo *repositories.SourceRepository) *SourceService {
	return &SourceService{Repo: repo}
}

func (s *SourceService) Create(source *models.Source) (int64, error) {
	if strings.TrimSpace(source.Name) == "" {
		return 0, errors.New("name is required")
	}
	if source.Kind == "" {
		source.Kind = models.SourceOther
	}
	if !models.ValidSourceKinds[source.Kind] {
		return 0, errors.New("invalid source kind")
	}
	if source.CreatedAt.IsZero() {
		source.CreatedAt = time.Now()
	}
	return s.Repo.Create(source)
}

func (s *SourceService) Update(source *models.Source) error {
	if strings.TrimSpace(source.Name) == "" {
		return errors.New("name is required")
	}
	if !models.ValidSourceKinds[source.Kind] {
		return errors.New("invalid source kind")
	}
	return s.Repo.Update(source)
}

func (s *SourceService) GetByID(id int) (*models.Source, error) {
	return s.Repo.GetByID(id)
}

func (s *SourceService) Delete(id int) error {
	return s.Repo.Delete(id)
}

func (s *SourceService) List(ownerID, limit, offset int) ([]*models.Source, error) {
	return s.Repo.ListByOwner(ownerID, limit, offset)
}
