package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/hash"
	"github.com/spacezone/backend/internal/logging"
	"github.com/spacezone/backend/internal/mailer"
	"github.com/spacezone/backend/internal/models"
	"github.com/spacezone/backend/internal/repo"
	"github.com/spacezone/backend/internal/transport"
	"github.com/spacezone/backend/pkg/tokens"
)

const (
	codeTTL          = 5 * time.Minute
	loginCodeWindow  = 30 * time.Second
	forgotCodeWindow = 5 * time.Minute
	dailyCodeCap     = 5
)

type AuthService struct {
	Repo          *repo.GormRepo
	Mailer        *mailer.Mailer
	JWTSecret     []byte
	RefreshSecret []byte
}

// OutcomeKind tags the terminal state of a send-code call. The same
// endpoint serves login, registration and privileged-account probing, so
// the branch taken is explicit rather than inferred from user state.
type OutcomeKind string

const (
	OutcomeLoginIssued         OutcomeKind = "login"
	OutcomeRegistrationPending OutcomeKind = "registration"
	OutcomeThrottled           OutcomeKind = "throttled"
	OutcomeRejected            OutcomeKind = "rejected"
)

type SendCodeOutcome struct {
	Kind              OutcomeKind
	RetryAfterSeconds int
}

type VerifyOutcome struct {
	Registration bool
	Message      string
	Tokens       *transport.TokenPair
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendCode drives the shared login/registration flow. Unknown emails become
// unverified accounts; known emails must present the matching password.
// adminFlow restricts issuance to superusers, the regular flow rejects them
// with the same generic message it uses for bad credentials.
func (s *AuthService) SendCode(ctx context.Context, email, password string, adminFlow bool) (*SendCodeOutcome, error) {
	l := logging.FromContext(ctx).With("svc", "auth.send_code")

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if adminFlow {
			return &SendCodeOutcome{Kind: OutcomeRejected}, nil
		}
		user, err = s.register(ctx, email, password)
		if err != nil {
			return nil, err
		}
		outcome, err := s.issue(ctx, user, loginCodeWindow)
		if err != nil {
			return nil, err
		}
		if outcome.Kind == OutcomeLoginIssued {
			outcome.Kind = OutcomeRegistrationPending
		}
		l.Info("registration pending", "user_id", user.ID)
		return outcome, nil
	case err != nil:
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) || !user.IsActive {
		l.Warn("send code rejected", "reason", "bad credentials")
		return &SendCodeOutcome{Kind: OutcomeRejected}, nil
	}
	// Privilege check runs before any code is generated so a rejected
	// caller leaves no side channel behind.
	if user.IsSuperuser != adminFlow {
		l.Warn("send code rejected", "reason", "privilege mismatch")
		return &SendCodeOutcome{Kind: OutcomeRejected}, nil
	}

	return s.issue(ctx, user, loginCodeWindow)
}

// SendForgotCode issues a password-reset code with the wider throttle
// window. Unknown emails are a validation error, matching the original
// reset flow.
func (s *AuthService) SendForgotCode(ctx context.Context, email string) (*SendCodeOutcome, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown email", ErrValidation)
		}
		return nil, err
	}
	if !user.IsActive || user.IsSuperuser {
		return &SendCodeOutcome{Kind: OutcomeRejected}, nil
	}

	return s.issue(ctx, user, forgotCodeWindow)
}

func (s *AuthService) register(ctx context.Context, email, password string) (*models.User, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User, window time.Duration) (*SendCodeOutcome, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	_, err = s.Repo.IssueCode(ctx, user.ID, code, codeTTL, window, dailyCodeCap)
	if err != nil {
		var throttled *repo.ThrottledError
		if errors.As(err, &throttled) {
			return &SendCodeOutcome{
				Kind:              OutcomeThrottled,
				RetryAfterSeconds: throttled.RetryAfterSeconds,
			}, nil
		}
		return nil, err
	}

	s.Mailer.Send(ctx, "Verification-Code", fmt.Sprintf("your auth code: %s", code), user.Email)
	return &SendCodeOutcome{Kind: OutcomeLoginIssued}, nil
}

// VerifyCode consumes the newest matching code row. An unverified account
// is flipped to verified with no tokens; a verified one gets a session.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string, adminFlow bool) (*VerifyOutcome, error) {
	l := logging.FromContext(ctx).With("svc", "auth.verify_code")

	if email == "" || code == "" {
		return nil, fmt.Errorf("%w: email and code are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if !user.IsActive || user.IsSuperuser != adminFlow {
		return nil, ErrInvalidCode
	}

	row, err := s.Repo.LatestCode(ctx, user.ID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if row.Used || row.IsExpired(time.Now().UTC()) {
		return nil, ErrInvalidCode
	}
	if err := s.Repo.MarkCodeUsed(ctx, row.ID); err != nil {
		return nil, err
	}

	if !user.IsVerified {
		user.IsVerified = true
		if err := s.Repo.SaveUser(ctx, user); err != nil {
			return nil, err
		}
		l.Info("registration completed", "user_id", user.ID)
		return &VerifyOutcome{Registration: true, Message: "Account verified."}, nil
	}

	pair, err := s.mintSession(ctx, user)
	if err != nil {
		return nil, err
	}
	l.Info("login", "user_id", user.ID)
	return &VerifyOutcome{Tokens: pair}, nil
}

func (s *AuthService) mintSession(ctx context.Context, user *models.User) (*transport.TokenPair, error) {
	now := time.Now().UTC()

	access, err := tokens.SignAccessToken(user.ID, user.IsSuperuser, now.Add(tokens.AccessTTL), s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshExp := now.Add(tokens.RefreshTTL)
	refresh, err := tokens.SignRefreshToken(user.ID, refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, err
	}
	claims, err := tokens.RefreshClaimsFromToken(refresh, s.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefreshToken(ctx, refresh, claims.ID, user.ID, refreshExp); err != nil {
		return nil, err
	}

	if err := s.Repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}

	return &transport.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh rotates a token pair after checking the stored row is live.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*transport.TokenPair, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: bad refresh token", ErrInvalidCredentials)
	}

	stored, err := s.Repo.GetRefreshTokenByJTI(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: refresh token not found", ErrInvalidCredentials)
		}
		return nil, err
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("%w: refresh token expired or revoked", ErrInvalidCredentials)
	}

	user, err := s.Repo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", ErrInvalidCredentials)
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.mintSession(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

// UpdatePassword re-hashes and revokes every live refresh token for the
// account.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, password, confirm string) error {
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = pwHash
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}
	return s.Repo.RevokeUserRefreshTokens(ctx, userID)
}
