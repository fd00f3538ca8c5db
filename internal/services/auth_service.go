package services

import (
	"context"
	"errors"

	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"

	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/pkg/googleauth"
	"github.com/eventops/staffing-backend/pkg/jwt"
)

// LoginResult is the payload of a successful sign-in or registration.
type LoginResult struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *models.User `json:"user"`
}

// ClientInfo carries the request fingerprint recorded in the login audit.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// AuthService implements Google sign-in, invite-based registration and
// token refresh.
type AuthService struct {
	verifier   googleauth.Verifier
	users      *database.UserRepository
	invites    *database.InviteRepository
	audits     *database.LoginAuditRepository
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	verifier googleauth.Verifier,
	users *database.UserRepository,
	invites *database.InviteRepository,
	audits *database.LoginAuditRepository,
	jwtService *jwt.Service,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		verifier:   verifier,
		users:      users,
		invites:    invites,
		audits:     audits,
		jwtService: jwtService,
		logger:     logger,
	}
}

// GoogleLogin exchanges a verified Google ID token for a session token
// pair. Unknown or deactivated accounts are rejected without revealing
// which.
func (s *AuthService) GoogleLogin(ctx context.Context, googleToken string, client ClientInfo) (*LoginResult, error) {
	email, err := s.verifier.VerifyEmail(ctx, googleToken)
	if err != nil {
		s.logger.WithError(err).Debug("Google token verification failed")
		return nil, ErrInvalidGoogleToken
	}

	user, err := s.users.GetByEmail(email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.recordLogin(user, client)
	return result, nil
}

// RegisterWithInvite provisions a new user from a pending invite and a
// verified Google identity, consuming the invite slot exactly once.
func (s *AuthService) RegisterWithInvite(ctx context.Context, inviteToken, googleToken, name string) (*LoginResult, error) {
	email, err := s.verifier.VerifyEmail(ctx, googleToken)
	if err != nil {
		s.logger.WithError(err).Debug("Google token verification failed")
		return nil, ErrInvalidGoogleToken
	}

	invite, err := s.invites.GetByID(inviteToken)
	if err != nil {
		return nil, err
	}

	if status := invite.Status(); status != models.InviteStatusPending {
		return nil, &InviteStateError{Status: status}
	}

	if invite.Email.Valid && invite.Email.String != email {
		return nil, ErrEmailMismatch
	}

	user, err := s.invites.Consume(invite, name, email)
	if errors.Is(err, database.ErrInviteConsumed) {
		return nil, &InviteStateError{Status: models.InviteStatusUsed}
	}
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user":    user.ID,
		"company": invite.CompanyID,
		"role":    user.Role,
	}).Info("User registered via invite")

	return s.issueTokens(user)
}

// Refresh validates a refresh token and issues a new access token with the
// user's current role and company.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", ErrUserNotFound
	}

	var companyID *int64
	if user.CompanyID.Valid {
		companyID = &user.CompanyID.Int64
	}
	return s.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role), companyID)
}

func (s *AuthService) issueTokens(user *models.User) (*LoginResult, error) {
	var companyID *int64
	if user.CompanyID.Valid {
		companyID = &user.CompanyID.Int64
	}

	access, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role), companyID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Access: access, Refresh: refresh, User: user}, nil
}

// recordLogin is best-effort: a failed audit write never blocks a sign-in.
func (s *AuthService) recordLogin(user *models.User, client ClientInfo) {
	audit := &models.LoginAudit{
		UserID: user.ID,
		Email:  user.Email,
	}
	if client.IP != "" {
		audit.IPAddress = models.SomeString(client.IP)
	}
	if client.UserAgent != "" {
		ua := user_agent.New(client.UserAgent)
		browser, version := ua.Browser()
		if browser != "" {
			audit.Browser = models.SomeString(browser + " " + version)
		}
		if os := ua.OS(); os != "" {
			audit.OSName = models.SomeString(os)
		}
		audit.Mobile = ua.Mobile()
	}

	if err := s.audits.Create(audit); err != nil {
		s.logger.WithError(err).Warn("Failed to record login audit")
	}
}
