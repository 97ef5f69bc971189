package services

import (
	"errors"
	"strings"
	"time"

	"freetrack/internal/models"
	"freetrack/internal/repositories"
)

type ClientService struct {
	Repo *repositories.ClientRepository
}

func NewClientService(repo *repositories.ClientRepository) *ClientService {
	return &ClientService{Repo: repo}
}

func (s *ClientService) Create(client *models.Client) (int64, error) {
	if strings.TrimSpace(client.Name) == "" {
		return 0, errors.New("name is required")
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}
	return s.Repo.Create(client)
}

func (s *ClientService) Update(client *models.Client) error {
	if strings.TrimSpace(client.Name) == "" {
		return errors.New("name is required")
	}
	return s.Repo.Update(client)
}

func (s *ClientService) GetByID(id int) (*models.Client, error) {
	return s.Repo.GetByID(id)
}

func (s *ClientService) Delete(id int) error {
	return s.Repo.Delete(id)
}

func (s *ClientService) List(ownerID, limit, offset int) ([]*models.Client, error) {
	return s.Repo.ListByOwner(ownerID, limit, offset)
}

func (s *ClientService) FindByName(ownerID int, name string) ([]*models.Client, error) {
	return s.Repo.FindByName(ownerID, name)
}
