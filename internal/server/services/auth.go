package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/logging"
	"github.com/dmitrijs2005/linekeeper/internal/server/auth"
	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
	"github.com/dmitrijs2005/linekeeper/internal/server/config"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linekeeper/internal/server/secrets"
)

// AuthService turns credentials into access tokens. Staff sign in with
// email and password, operators with their badge.
type AuthService struct {
	store
	policy                      *secrets.Policy
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		store:                       store{db: db, repos: m, log: log, timeout: cfg.OperationTimeout},
		policy:                      secrets.NewPolicy(),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// LoginPassword checks email and secret against the staff table.
func (s *AuthService) LoginPassword(ctx context.Context, email, secret string) (string, error) {
	if email == "" || secret == "" {
		return "", common.ErrInvalidCredentials
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.login(ctx, models.TableStaff, columns.Email, email, func(stored string) bool {
		return s.policy.Verify(models.TableStaff, stored, secret)
	})
}

// LoginBadge looks the badge up in the operator table.
func (s *AuthService) LoginBadge(ctx context.Context, badge string) (string, error) {
	if badge == "" {
		return "", common.ErrInvalidCredentials
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	return s.login(ctx, models.TableOperators, columns.BadgeCode, badge, nil)
}

func (s *AuthService) login(ctx context.Context, t models.Table, by columns.Role, value string, verify func(stored string) bool) (string, error) {
	m, repo, err := s.accessor(ctx, t)
	if err != nil {
		return "", err
	}

	row, err := repo.FindBy(ctx, by, value)
	if errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrInvalidCredentials
	}
	if err != nil {
		s.logFailure(ctx, "login", err)
		return "", common.ErrorInternal
	}
	if verify != nil && !verify(row[columns.Secret]) {
		return "", common.ErrInvalidCredentials
	}

	u, err := toUser(t, m, row)
	if err != nil {
		s.logFailure(ctx, "login", err)
		return "", common.ErrInvalidCredentials
	}

	caller := models.Caller{Subject: string(t) + ":" + u.ID, Classification: u.Classification}
	token, err := auth.GenerateToken(caller, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logFailure(ctx, "login", err)
		return "", common.ErrorInternal
	}
	s.log.Info(ctx, "login", "subject", caller.Subject, "classification", caller.Classification)
	return token, nil
}
