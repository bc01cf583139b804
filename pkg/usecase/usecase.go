package usecase

import (
	"time"

	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/domain/model/config"
)

type UseCases struct {
	repo  interfaces.Repository
	cfg   *config.WorkboardConfig
	nowFn func() time.Time

	Query *QueryUseCase
	View  *ViewUseCase
	Edit  *EditUseCase
}

type Option func(*UseCases)

func WithConfig(cfg *config.WorkboardConfig) Option {
	return func(uc *UseCases) {
		uc.cfg = cfg
	}
}

// WithClock overrides the time source. Formula values depend on "now", so
// tests pin it.
func WithClock(nowFn func() time.Time) Option {
	return func(uc *UseCases) {
		uc.nowFn = nowFn
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		nowFn: time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.cfg == nil {
		uc.cfg = config.Default()
	}

	uc.Query = NewQueryUseCase(repo, uc.cfg, uc.nowFn)
	uc.View = NewViewUseCase(repo)
	uc.Edit = NewEditUseCase(repo, uc.cfg, uc.nowFn)

	return uc
}
