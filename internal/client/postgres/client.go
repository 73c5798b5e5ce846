package postgres

import (
	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/client"
)

// ClientRepository implements client.RepositoryAPI using GORM.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(c *client.Client) error {
	return r.db.Create(c).Error
}

func (r *ClientRepository) GetByID(id int64) (*client.Client, error) {
	var c client.Client
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) List(search string) ([]*client.Client, error) {
	var clients []*client.Client
	query := r.db.Order("created_at DESC")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR parent_name LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) Delete(id int64) error {
	result := r.db.Delete(&client.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrClientNotFound
	}
	return nil
}
