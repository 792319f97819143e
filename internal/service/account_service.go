package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"pizza-storefront/internal/backend"
	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/model"
	"pizza-storefront/internal/session"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// accountService implements AccountService.
type accountService struct {
	api               AccountAPI
	session           *session.Session
	cart              *cart.Engine
	staffPasswordHash []byte
	logger            zerolog.Logger
}

// NewAccountService creates a new account service. staffPasswordHash is a
// bcrypt hash; an empty hash disables staff login.
func NewAccountService(
	api AccountAPI,
	sess *session.Session,
	engine *cart.Engine,
	staffPasswordHash string,
	logger zerolog.Logger,
) AccountService {
	return &accountService{
		api:               api,
		session:           sess,
		cart:              engine,
		staffPasswordHash: []byte(staffPasswordHash),
		logger:            logger.With().Str("service", "account").Logger(),
	}
}

// Login signs a customer in.
func (s *accountService) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	if err := creds.Validate(); err != nil {
		return model.User{}, err
	}

	user, err := s.api.Login(ctx, creds)
	if err != nil {
		if code, ok := backend.StatusCode(err); ok && (code == http.StatusUnauthorized || code == http.StatusNotFound) {
			s.logger.Info().Str("email", creds.Email).Msg("login refused")
			return model.User{}, model.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("login failed")
		return model.User{}, fmt.Errorf("failed to log in: %w", err)
	}

	return s.signIn(ctx, user)
}

// Register creates an account and signs it in.
func (s *accountService) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	if err := reg.Validate(); err != nil {
		return model.User{}, err
	}

	user, err := s.api.Register(ctx, reg)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", reg.Email).Msg("registration failed")
		return model.User{}, fmt.Errorf("failed to register: %w", err)
	}

	return s.signIn(ctx, user)
}

// GoogleLogin signs a customer in with a Google credential.
func (s *accountService) GoogleLogin(ctx context.Context, token model.GoogleToken) (model.User, error) {
	if err := token.Validate(); err != nil {
		return model.User{}, err
	}

	user, err := s.api.GoogleLogin(ctx, token)
	if err != nil {
		if code, ok := backend.StatusCode(err); ok && code == http.StatusUnauthorized {
			return model.User{}, model.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("google login failed")
		return model.User{}, fmt.Errorf("failed to log in with google: %w", err)
	}

	return s.signIn(ctx, user)
}

func (s *accountService) signIn(ctx context.Context, user model.User) (model.User, error) {
	if err := s.session.SetUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to store session")
		return model.User{}, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("customer signed in")
	return user, nil
}

// Profile returns the signed-in customer.
func (s *accountService) Profile(_ context.Context) (model.User, error) {
	user, ok := s.session.User()
	if !ok {
		return model.User{}, model.ErrAuthRequired
	}
	return user, nil
}

// UpdateProfile saves the delivery details.
func (s *accountService) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.User, error) {
	current, ok := s.session.User()
	if !ok {
		return model.User{}, model.ErrAuthRequired
	}
	if err := update.Validate(); err != nil {
		return model.User{}, err
	}

	updated, err := s.api.UpdateProfile(ctx, current.ID, update)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", current.ID).Msg("failed to update profile")
		return model.User{}, fmt.Errorf("failed to update profile: %w", err)
	}

	// Older backends do not echo the city.
	if updated.City == "" {
		updated.City = update.City
	}
	if updated.Email == "" {
		updated.Email = current.Email
	}

	if err := s.session.SetUser(ctx, updated); err != nil {
		return model.User{}, err
	}

	s.logger.Info().Int64("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}

// Logout forgets the customer and empties the cart.
func (s *accountService) Logout(ctx context.Context) error {
	userErr := s.session.ClearUser(ctx)
	cartErr := s.cart.Clear(ctx)
	if err := errors.Join(userErr, cartErr); err != nil {
		s.logger.Error().Err(err).Msg("logout incomplete")
		return fmt.Errorf("failed to log out: %w", err)
	}

	s.logger.Info().Msg("customer signed out")
	return nil
}

// StaffLogin checks the staff password and opens a staff session.
func (s *accountService) StaffLogin(ctx context.Context, password string) (StaffSession, error) {
	if len(s.staffPasswordHash) == 0 || password == "" {
		return StaffSession{}, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.staffPasswordHash, []byte(password)); err != nil {
		s.logger.Warn().Msg("staff login refused")
		return StaffSession{}, model.ErrInvalidCredentials
	}

	token, exp, err := s.session.StartStaff(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to start staff session")
		return StaffSession{}, fmt.Errorf("failed to start staff session: %w", err)
	}

	s.logger.Info().Time("expires_at", exp).Msg("staff signed in")
	return StaffSession{Token: token, ExpiresAt: exp}, nil
}

// StaffLogout ends the staff session.
func (s *accountService) StaffLogout(ctx context.Context) error {
	if err := s.session.EndStaff(ctx); err != nil {
		return fmt.Errorf("failed to end staff session: %w", err)
	}
	s.logger.Info().Msg("staff signed out")
	return nil
}

// State reports the customer and the staff flag.
func (s *accountService) State() session.State {
	return s.session.State()
}
