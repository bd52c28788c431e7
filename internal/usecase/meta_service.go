package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
)

type DatasetMeta struct {
	UpdatedAt *time.Time
}

type MetaService struct {
	repo roster.Repository
}

func NewMetaService(repo roster.Repository) *MetaService {
	return &MetaService{repo: repo}
}

func (s *MetaService) Get(ctx context.Context) (DatasetMeta, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MetaService.Get")
	defer span.End()

	version, ok, err := s.repo.Version(ctx)
	if err != nil {
		return DatasetMeta{}, fmt.Errorf("get dataset version: %w", err)
	}
	if !ok {
		return DatasetMeta{}, nil
	}
	return DatasetMeta{UpdatedAt: &version}, nil
}
