package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kapurocks/directory/internal/core/domain"
	"github.com/kapurocks/directory/internal/core/ports"
)

const defaultResetTTL = time.Hour

// AccountOptions tunes AccountService. Zero values select defaults.
type AccountOptions struct {
	BcryptCost int
	ResetTTL   time.Duration
	Clock      func() time.Time
}

// AccountService implements registration, login, channel linking and
// credential recovery.
type AccountService struct {
	users    ports.UserRepository
	sessions ports.SessionService
	codes    ports.OneTimeCodes
	resets   ports.ResetTokenRepository
	notifier ports.Notifier
	logger   zerolog.Logger

	cost     int
	resetTTL time.Duration
	clock    func() time.Time
}

func NewAccountService(
	users ports.UserRepository,
	sessions ports.SessionService,
	codes ports.OneTimeCodes,
	resets ports.ResetTokenRepository,
	notifier ports.Notifier,
	logger zerolog.Logger,
	opts AccountOptions,
) *AccountService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = defaultResetTTL
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &AccountService{
		users:    users,
		sessions: sessions,
		codes:    codes,
		resets:   resets,
		notifier: notifier,
		logger:   logger,
		cost:     opts.BcryptCost,
		resetTTL: opts.ResetTTL,
		clock:    opts.Clock,
	}
}

func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (domain.Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Mobile = strings.TrimSpace(in.Mobile)
	if in.Name == "" {
		return domain.Session{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	secret := in.Password
	switch in.Channel {
	case domain.ChannelGmail:
		if in.Email == "" || in.Password == "" {
			return domain.Session{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
		}
	case domain.ChannelMobile:
		if in.Mobile == "" {
			return domain.Session{}, fmt.Errorf("%w: mobile is required", domain.ErrInvalidInput)
		}
		if !s.codes.Verify(in.Mobile, in.Code) {
			return domain.Session{}, domain.ErrInvalidCode
		}
		// Mobile accounts sign in with one-time codes; the stored
		// credential only exists so a later reset has something to replace.
		secret = uuid.NewString()
	default:
		return domain.Session{}, fmt.Errorf("%w: unknown channel %q", domain.ErrInvalidInput, in.Channel)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return domain.Session{}, fmt.Errorf("hash credential: %w", err)
	}

	user := &domain.User{
		Name:       in.Name,
		Email:      in.Email,
		Mobile:     in.Mobile,
		Credential: string(hash),
		Role:       domain.RoleUser,
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.Session{}, err
	}

	session := user.Session()
	if err := s.sessions.Establish(ctx, session); err != nil {
		return domain.Session{}, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("channel", string(in.Channel)).
		Msg("account registered")

	return session, nil
}

func (s *AccountService) Authenticate(ctx context.Context, channel domain.Channel, identifier, secret string) (domain.Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	var user *domain.User
	var err error
	switch channel {
	case domain.ChannelGmail:
		user, err = s.users.FindByEmail(ctx, identifier)
		if err != nil {
			return domain.Session{}, notFoundAs(err, domain.ErrInvalidCredentials)
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Credential), []byte(secret)) != nil {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
	case domain.ChannelMobile:
		user, err = s.users.FindByMobile(ctx, identifier)
		if err != nil {
			return domain.Session{}, notFoundAs(err, domain.ErrInvalidCredentials)
		}
		if !s.codes.Verify(identifier, secret) {
			return domain.Session{}, domain.ErrInvalidCode
		}
	default:
		return domain.Session{}, fmt.Errorf("%w: unknown channel %q", domain.ErrInvalidInput, channel)
	}

	session := user.Session()
	if err := s.sessions.Establish(ctx, session); err != nil {
		return domain.Session{}, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("channel", string(channel)).
		Msg("user authenticated")

	return session, nil
}

func (s *AccountService) IssueCode(ctx context.Context, mobile string) error {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return fmt.Errorf("%w: mobile is required", domain.ErrInvalidInput)
	}
	return s.codes.Issue(ctx, mobile)
}

// LinkChannel fills the actor's empty email and mobile fields. Fields that
// are already set are never overwritten.
func (s *AccountService) LinkChannel(ctx context.Context, actor domain.Session, email, mobile string) (domain.Session, error) {
	if !actor.Authenticated() {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	email = strings.TrimSpace(email)
	mobile = strings.TrimSpace(mobile)

	user, err := s.users.Update(ctx, actor.UserID, func(u *domain.User) error {
		if u.Email == "" && email != "" {
			u.Email = email
		}
		if u.Mobile == "" && mobile != "" {
			u.Mobile = mobile
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.sessions.Refresh(ctx, *user); err != nil {
		return domain.Session{}, err
	}
	return user.Session(), nil
}

// Lookup finds an account by email or, failing that, by mobile.
func (s *AccountService) Lookup(ctx context.Context, identifier string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.users.FindByEmail(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.FindByMobile(ctx, identifier)
	}
	return user, err
}

// Principal returns the current session projection of userID. Tokens only
// identify the account; role and contact fields always come from the store.
func (s *AccountService) Principal(ctx context.Context, userID int64) (domain.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Session{}, err
	}
	return user.Session(), nil
}

// RequestReset sends a single-use reset token to the channel the caller
// identified the account by.
func (s *AccountService) RequestReset(ctx context.Context, identifier string) error {
	user, err := s.Lookup(ctx, identifier)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	err = s.resets.Save(ctx, domain.ResetToken{
		Digest:    digest(token),
		UserID:    user.ID,
		ExpiresAt: s.clock().Add(s.resetTTL),
	})
	if err != nil {
		return err
	}

	n := domain.Notification{
		Medium:    domain.MediumEmail,
		Recipient: user.Email,
		Subject:   "Reset your password",
		Body:      fmt.Sprintf("Use this code to reset your password: %s", token),
	}
	if user.Email != strings.TrimSpace(identifier) {
		n.Medium = domain.MediumSMS
		n.Recipient = user.Mobile
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		return fmt.Errorf("deliver reset token: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("medium", string(n.Medium)).Msg("password reset requested")
	return nil
}

func (s *AccountService) ResetCredential(ctx context.Context, token, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	reset, err := s.resets.Consume(ctx, digest(token), s.clock())
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash credential: %w", err)
	}
	_, err = s.users.Update(ctx, reset.UserID, func(u *domain.User) error {
		u.Credential = string(hash)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", reset.UserID).Msg("password reset completed")
	return nil
}

// RecoverUsername texts the account's sign-in email to its mobile number.
func (s *AccountService) RecoverUsername(ctx context.Context, mobile string) error {
	user, err := s.users.FindByMobile(ctx, strings.TrimSpace(mobile))
	if err != nil {
		return err
	}

	username := user.Email
	if username == "" {
		username = user.Mobile
	}
	err = s.notifier.Notify(ctx, domain.Notification{
		Medium:    domain.MediumSMS,
		Recipient: user.Mobile,
		Subject:   "Your username",
		Body:      fmt.Sprintf("Your username is %s", username),
	})
	if err != nil {
		return fmt.Errorf("deliver username: %w", err)
	}
	return nil
}

func notFoundAs(err, target error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return target
	}
	return err
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
