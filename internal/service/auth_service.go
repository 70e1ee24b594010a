package service

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-admin-portal/internal/config"
	"go-admin-portal/internal/flowcache"
	"go-admin-portal/internal/idp"
	"go-admin-portal/internal/model"
	"go-admin-portal/internal/repository"
	"go-admin-portal/pkg/jwt"
)

var ErrTokenNotFound = errors.New("token not found")

type AuthService interface {
	LoginURL(ctx context.Context, frontendHost string) (string, error)
	HandleRedirect(ctx context.Context, code, state string) string
	Logout(username string) error
	Token(username string) (string, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	userSvc   UserService
	audit     AuditService
	provider  *idp.Client
	flows     *flowcache.FlowCache
	tokens    *jwt.Manager
	cfg       *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	userSvc UserService,
	audit AuditService,
	provider *idp.Client,
	flows *flowcache.FlowCache,
	tokens *jwt.Manager,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		userSvc:   userSvc,
		audit:     audit,
		provider:  provider,
		flows:     flows,
		tokens:    tokens,
		cfg:       cfg,
	}
}

// LoginURL starts an authorization-code flow: the pending state is parked in
// the flow cache and the caller is redirected to the provider.
func (s *authService) LoginURL(ctx context.Context, frontendHost string) (string, error) {
	if frontendHost == "" {
		frontendHost = s.cfg.FrontendHost
	}

	flow := &flowcache.Flow{
		State:        uuid.New().String(),
		FrontendHost: frontendHost,
		CreatedAt:    time.Now(),
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return "", err
	}
	return s.provider.AuthCodeURL(flow.State), nil
}

// HandleRedirect finishes the flow: exchange the code, fetch the verified
// identity, provision the user on first login, issue the signed credential,
// and persist the live-session row. It always returns a frontend URL to
// redirect to; failures are reported there, never as API errors.
func (s *authService) HandleRedirect(ctx context.Context, code, state string) string {
	flow, err := s.flows.Take(ctx, state)
	if err != nil {
		log.Printf("Login flow for state not found: %v", err)
		return failureURL(s.cfg.FrontendHost)
	}

	providerToken, err := s.provider.Exchange(ctx, code)
	if err != nil {
		log.Printf("Failed to exchange authorization code: %v", err)
		return failureURL(flow.FrontendHost)
	}

	info, err := s.provider.UserInfo(ctx, providerToken)
	if err != nil {
		log.Printf("Failed to fetch user info: %v", err)
		return failureURL(flow.FrontendHost)
	}
	username := strings.ToLower(info.Mail)

	if _, err := s.userRepo.FindByEmail(username); err != nil {
		if _, err := s.userSvc.CreateUser(&CreateUserRequest{Name: info.DisplayName, Email: username}); err != nil {
			log.Printf("Failed to provision user '%s': %v", username, err)
			return failureURL(flow.FrontendHost)
		}
	}

	token, err := s.tokens.Generate(username, s.cfg.TokenTTL)
	if err != nil {
		log.Printf("Failed to generate token for '%s': %v", username, err)
		return failureURL(flow.FrontendHost)
	}
	if err := s.tokenRepo.Upsert(username, token, info.ID); err != nil {
		log.Printf("Failed to persist token for '%s': %v", username, err)
		return failureURL(flow.FrontendHost)
	}

	s.audit.Record(username, model.AuditLogin, model.AuditSuccess, "login success")

	return flow.FrontendHost + "/login-result?result=success&username=" + url.QueryEscape(username)
}

// Logout deletes the live-session row. That deletion is the whole
// invalidation story: a still-unexpired token is dead the moment the row is
// gone.
func (s *authService) Logout(username string) error {
	if _, err := s.tokenRepo.FindByName(username); err != nil {
		s.audit.Record(username, model.AuditLogout, model.AuditFailure, "logout failed: token not found")
		return ErrTokenNotFound
	}
	if err := s.tokenRepo.DeleteByName(username); err != nil {
		s.audit.Record(username, model.AuditLogout, model.AuditFailure, "logout failed: "+err.Error())
		return err
	}
	s.audit.Record(username, model.AuditLogout, model.AuditSuccess, "logout success")
	return nil
}

func (s *authService) Token(username string) (string, error) {
	t, err := s.tokenRepo.FindByName(username)
	if err != nil {
		return "", ErrTokenNotFound
	}
	return t.Token, nil
}

func failureURL(frontendHost string) string {
	return frontendHost + "/login-result?result=failure"
}
