package repository

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para el principal (DIP).
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
