package client

import (
	"strings"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

// newRegistration is the last-service marker for clients who have not bought
// anything yet.
const newRegistration = "New Registration"

type CreateClientDTO struct {
	Name       string `json:"name"`
	ParentName string `json:"parent_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (d *CreateClientDTO) Validate() (*Client, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, internal.NewValidationError("client name is required", internal.ErrCodeValidationFailed)
	}

	return &Client{
		Name:        name,
		ParentName:  strings.TrimSpace(d.ParentName),
		Email:       strings.ToLower(strings.TrimSpace(d.Email)),
		Phone:       strings.TrimSpace(d.Phone),
		LastService: newRegistration,
	}, nil
}
