package rbac

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-rrhh/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const defaultPolicyTTL = 30 * time.Second

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy(ctx context.Context) error
	Enforce(req domain.EnforceRequest) (bool, error)
	ListPermissions(ctx context.Context) ([]PermissionResponse, error)
	Grant(ctx context.Context, req PermissionRequest) error
	Revoke(ctx context.Context, req PermissionRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	ttl      time.Duration
	loadedAt time.Time
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		ttl:      defaultPolicyTTL,
		logger:   l,
	}
}

func (s *service) LoadPolicy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked(ctx)
}

func (s *service) loadPolicyUnlocked(ctx context.Context) error {
	userRoles, err := s.repo.GetUserRoles(ctx)
	if err != nil {
		return err
	}
	rolePerms, err := s.repo.GetRolePermissions(ctx)
	if err != nil {
		return err
	}

	s.enforcer.ClearPolicy()
	for _, ur := range userRoles {
		if _, err := s.enforcer.AddGroupingPolicy(ur.Username, ur.Role); err != nil {
			return err
		}
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}
	s.loadedAt = time.Now()

	s.logger.Debug("rbac policy loaded",
		zap.Int("user_roles", len(userRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

// Enforce reloads the policy from the database once it is older than the ttl.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadedAt.IsZero() || time.Since(s.loadedAt) > s.ttl {
		if err := s.loadPolicyUnlocked(context.Background()); err != nil {
			return false, err
		}
	}

	allowed, err := s.enforcer.Enforce(req.Subject, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("subject", req.Subject),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("subject", req.Subject),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListPermissions(ctx context.Context) ([]PermissionResponse, error) {
	perms, err := s.repo.GetRolePermissions(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		resp[i] = PermissionResponse{Role: p.Role, Resource: p.Resource, Action: p.Action}
	}
	return resp, nil
}

func (s *service) Grant(ctx context.Context, req PermissionRequest) error {
	req = normalize(req)
	if err := s.repo.GrantPermission(ctx, &RolePermission{Role: req.Role, Resource: req.Resource, Action: req.Action}); err != nil {
		return err
	}
	return s.LoadPolicy(ctx)
}

func (s *service) Revoke(ctx context.Context, req PermissionRequest) (bool, error) {
	req = normalize(req)
	removed, err := s.repo.RevokePermission(ctx, req.Role, req.Resource, req.Action)
	if err != nil {
		return false, err
	}
	return removed, s.LoadPolicy(ctx)
}

func normalize(req PermissionRequest) PermissionRequest {
	return PermissionRequest{
		Role:     strings.TrimSpace(req.Role),
		Resource: strings.TrimSpace(req.Resource),
		Action:   strings.TrimSpace(req.Action),
	}
}
