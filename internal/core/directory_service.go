package core

import (
	"context"
	"fmt"

	"attendance.service/internal/core/model"
	"attendance.service/internal/ports/repository"
)

// DirectoryService lists the known employees and offices for client pickers.
type DirectoryService struct {
	repo repository.DirectoryRepository
}

func NewDirectoryService(repo repository.DirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *DirectoryService) ListOffices(ctx context.Context) ([]model.Office, error) {
	offices, err := s.repo.ListOffices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	return offices, nil
}
