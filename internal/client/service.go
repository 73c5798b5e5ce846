package client

import (
	"log/slog"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

type RepositoryAPI interface {
	Create(c *Client) error
	GetByID(id int64) (*Client, error)
	// List returns clients newest first. A non-empty search term matches
	// name, parent name or phone.
	List(search string) ([]*Client, error)
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateClient registers a new client record. The sale form is the main
// caller, so the gate matches sale creation.
func (s *Service) CreateClient(dto *CreateClientDTO, perms permission.Set) (*Client, error) {
	if !perms.Has(permission.CreateSales) {
		return nil, internal.ErrForbidden
	}

	c, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create client", "error", err, "name", c.Name)
		return nil, err
	}

	s.logger.Info("client registered", "client_id", c.ID, "name", c.Name)
	return c, nil
}

// ListClients is readable by any authenticated user.
func (s *Service) ListClients(search string) ([]*Client, error) {
	return s.repo.List(search)
}

func (s *Service) GetClient(id int64) (*Client, error) {
	return s.repo.GetByID(id)
}

func (s *Service) DeleteClient(id int64, perms permission.Set) error {
	if !perms.Has(permission.DeleteSales) {
		return internal.ErrForbidden
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete client", "error", err, "client_id", id)
		return err
	}

	s.logger.Info("client deleted", "client_id", id)
	return nil
}
