package services

import (
	"errors"
	"strings"
	"time"

	"freetrack/internal/models"
	"freetrack/internal/repositories"
)

type ContactService struct {
	Repo       *repositories.ContactRepository
	ClientRepo *repositories.ClientRepository
}

func NewContactService(repo *repositories.ContactRepository, clientRepo *repositories.ClientRepository) *ContactService {
	return &ContactService{Repo: repo, ClientRepo: clientRepo}
}

func (s *ContactService) Create(contact *models.Contact) (int64, error) {
	if strings.TrimSpace(contact.FirstName) == "" && strings.TrimSpace(contact.LastName) == "" {
		return 0, errors.New("a first or last name is required")
	}
	client, err := s.ClientRepo.GetByID(contact.ClientID)
	if err != nil {
		return 0, err
	}
	if client == nil || client.OwnerID != contact.OwnerID {
		return 0, errors.New("client not found")
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	return s.Repo.Create(contact)
}

func (s *ContactService) Update(contact *models.Contact) error {
	if strings.TrimSpace(contact.FirstName) == "" && strings.TrimSpace(contact.LastName) == "" {
		return errors.New("a first or last name is required")
	}
	return s.Repo.Update(contact)
}

func (s *ContactService) GetByID(id int) (*models.Contact, error) {
	return s.Repo.GetByID(id)
}

func (s *ContactService) Delete(id int) error {
	return s.Repo.Delete(id)
}

func (s *ContactService) List(ownerID, limit, offset int) ([]*models.Contact, error) {
	return s.Repo.ListByOwner(ownerID, limit, offset)
}

func (s *ContactService) ListByClient(clientID int) ([]*models.Contact, error) {
	return s.Repo.ListByClient(clientID)
}

func (s *ContactService) FindByName(ownerID int, name string) ([]*models.Contact, error) {
	return s.Repo.FindByName(ownerID, name)
}
