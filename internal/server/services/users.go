package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/friendstories/internal/server/models"
	"github.com/dmitrijs2005/friendstories/internal/server/repositories/repomanager"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, repomanager repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: repomanager}
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}
