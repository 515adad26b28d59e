package repository

import "github.com/flightdesk/flightdesk-api/internal/domain/entity"

// UserRepository is the persistence port for users. Lookups return (nil, nil)
// when the row does not exist.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
}
