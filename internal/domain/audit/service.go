package audit

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	return s.repo.Query(ctx, f, limit, offset)
}
