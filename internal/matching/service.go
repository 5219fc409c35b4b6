package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, title string) (*uuid.UUID, error)
	CreateMapping(ctx context.Context, titlePattern string, categoryID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category learned for the longest pattern contained in
// title, or nil when nothing matches.
func (s *Service) Suggest(ctx context.Context, title string) (*uuid.UUID, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	return s.repo.FindMatch(ctx, title)
}

// Learn remembers that titles containing titlePattern belong to categoryID.
func (s *Service) Learn(ctx context.Context, titlePattern string, categoryID uuid.UUID) error {
	titlePattern = strings.TrimSpace(titlePattern)
	if titlePattern == "" {
		return fmt.Errorf("empty title pattern")
	}

	return s.repo.CreateMapping(ctx, titlePattern, categoryID)
}
