package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	diagnosiserrors "go-rrhh/internal/diagnosis/errors"
	"go-rrhh/internal/shared/apperror"
	"go-rrhh/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout = 12 * time.Second
	cacheTTL       = 24 * time.Hour
	cachePrefix    = "cie10:search:"
	minQueryLength = 3
)

//go:generate mockgen -source=diagnosis_service.go -destination=mock/diagnosis_service_mock.go -package=mock
type Service interface {
	Search(ctx context.Context, query string) ([]Diagnosis, error)
}

type Option func(*service)

func WithTimeout(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("diagnosis.service")
		}
	}
}

type service struct {
	providers []Provider
	rdb       *redis.Client
	sf        *singleflight.Group
	timeout   time.Duration
	logger    *zap.Logger
}

// NewService tries providers in order; the first one to answer wins. A nil
// rdb disables caching.
func NewService(rdb *redis.Client, providers []Provider, opts ...Option) Service {
	s := &service{
		providers: providers,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		timeout:   DefaultTimeout,
		logger:    zap.L().Named("diagnosis.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Search(ctx context.Context, query string) ([]Diagnosis, error) {
	query = strings.Join(strings.Fields(query), " ")
	if len([]rune(query)) < minQueryLength {
		return nil, diagnosiserrors.ErrQueryTooShort
	}
	key := cachePrefix + strings.ToLower(query)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp []Diagnosis
			if json.Unmarshal(cached, &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		resp, err := s.searchProviders(ctx, query)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, key, data, cacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Diagnosis), nil
}

func (s *service) searchProviders(ctx context.Context, query string) ([]Diagnosis, error) {
	rid := contextutil.GetRequestID(ctx)
	var lastErr error

	for _, p := range s.providers {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := p.Search(callCtx, query)
		cancel()
		if err == nil {
			return resp, nil
		}

		lastErr = err
		s.logger.Warn("diagnosis provider failed",
			zap.String("request_id", rid),
			zap.String("provider", p.Name()),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}

	if errors.Is(lastErr, context.DeadlineExceeded) {
		return nil, apperror.ErrUpstreamTimeout
	}
	return nil, diagnosiserrors.ErrCatalogUnavailable
}
