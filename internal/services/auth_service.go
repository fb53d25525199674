package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ticketing/internal/domain/models"
	"ticketing/internal/query"
	"ticketing/internal/repository"
	"ticketing/internal/token"
	"ticketing/internal/uow"
)

// AuthService issues, validates and revokes session tokens. It is a
// unit-of-work client like any domain service, plus it owns the token
// codec.
type AuthService struct {
	uow        *uow.Factory
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration

	// rotateRefresh revokes the presented refresh token and issues a
	// replacement on every refresh. Off by default: the stock flow
	// reissues only the access token.
	rotateRefresh bool
}

// NewAuthService wires the session service.
func NewAuthService(f *uow.Factory, codec *token.Codec, accessTTL, refreshTTL time.Duration, rotateRefresh bool) *AuthService {
	return &AuthService{
		uow:           f,
		codec:         codec,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		rotateRefresh: rotateRefresh,
	}
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Nickname string
	Email    string
	Password string
}

// TokenPair is a login/registration result. RefreshToken is empty on
// a non-rotating refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Login authenticates by email and password and issues a fresh token
// pair, persisting the refresh record in the same unit of work.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair *TokenPair
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		user, err := w.Users.Find(ctx, nil, map[string]query.Predicate{
			"email": query.Eq(email),
		})
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("login %q: %w", email, ErrLogin)
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return fmt.Errorf("login %q: %w", email, ErrLogin)
		}
		pair, err = s.issueTokens(ctx, w, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Register creates the account and issues tokens as in login. A
// uniqueness violation on the email becomes ErrRegistration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var pair *TokenPair
	err = s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		user, err := w.Users.Add(ctx, map[string]any{
			"nickname":  in.Nickname,
			"email":     in.Email,
			"password":  string(hash),
			"is_active": true,
			"is_admin":  false,
		})
		if err != nil {
			if errors.Is(err, repository.ErrIntegrity) {
				return fmt.Errorf("register %q: %w", in.Email, ErrRegistration)
			}
			return err
		}
		pair, err = s.issueTokens(ctx, w, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Refresh validates a refresh token against its persisted record and
// mints a new access token. The refresh token itself is only rotated
// when the service was configured for it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		rec, err := w.RefreshTokens.Find(ctx, nil, map[string]query.Predicate{
			"token": query.Eq(refreshToken),
		})
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("refresh: unknown token: %w", ErrInvalidRefreshToken)
		}
		if rec.Revoked {
			return fmt.Errorf("refresh: token revoked: %w", ErrInvalidRefreshToken)
		}
		user, err := w.Users.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(rec.UserID),
		})
		if err != nil {
			return err
		}
		if user == nil || !user.IsActive {
			return fmt.Errorf("refresh: user inactive: %w", ErrInvalidRefreshToken)
		}
		if _, err := s.codec.Decode(refreshToken); err != nil {
			return fmt.Errorf("refresh: %v: %w", err, ErrInvalidRefreshToken)
		}

		if s.rotateRefresh {
			if _, err := w.RefreshTokens.Update(ctx, rec.ID, map[string]any{"revoked": true}); err != nil {
				return err
			}
			pair, err = s.issueTokens(ctx, w, user)
			return err
		}

		// Flush the lookups before minting, mirroring the explicit
		// mid-scope commit of the stock flow.
		if err := w.Commit(); err != nil {
			return err
		}
		access, err := s.codec.Encode(s.claims(user, token.KindAccess), s.accessTTL)
		if err != nil {
			return err
		}
		pair = &TokenPair{AccessToken: access, TokenType: "Bearer"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes the persisted record behind the refresh token. The
// token must decode cleanly and match an unrevoked record.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (string, error) {
	if _, err := s.codec.Decode(refreshToken); err != nil {
		return "", fmt.Errorf("logout: %v: %w", err, ErrInvalidRefreshToken)
	}

	var revoked string
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		rec, err := w.RefreshTokens.Find(ctx, nil, map[string]query.Predicate{
			"token": query.Eq(refreshToken),
		})
		if err != nil {
			return err
		}
		if rec == nil || rec.Revoked {
			return fmt.Errorf("logout: no active record: %w", ErrInvalidRefreshToken)
		}
		updated, err := w.RefreshTokens.Update(ctx, rec.ID, map[string]any{"revoked": true})
		if err != nil {
			return err
		}
		if updated == nil {
			return fmt.Errorf("logout: record vanished: %w", ErrInvalidRefreshToken)
		}
		revoked = updated.Token
		return nil
	})
	if err != nil {
		return "", err
	}
	return revoked, nil
}

// Auth validates a bearer token for request authorization. The token
// must decode and carry the access kind.
func (s *AuthService) Auth(accessToken string) (*token.Claims, error) {
	claims, err := s.codec.Decode(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrAuthentication)
	}
	if claims.Kind != token.KindAccess {
		return nil, fmt.Errorf("token kind %q is not an access token: %w", claims.Kind, ErrAuthentication)
	}
	return claims, nil
}

func (s *AuthService) issueTokens(ctx context.Context, w *uow.UnitOfWork, user *models.User) (*TokenPair, error) {
	refresh, err := s.codec.Encode(s.claims(user, token.KindRefresh), s.refreshTTL)
	if err != nil {
		return nil, err
	}
	access, err := s.codec.Encode(s.claims(user, token.KindAccess), s.accessTTL)
	if err != nil {
		return nil, err
	}
	if _, err := w.RefreshTokens.Add(ctx, map[string]any{
		"token":   refresh,
		"user_id": user.ID,
		"revoked": false,
	}); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "Bearer"}, nil
}

func (s *AuthService) claims(user *models.User, kind string) token.Claims {
	c := token.Claims{
		Kind:     kind,
		Nickname: user.Nickname,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}
	c.Subject = strconv.FormatInt(user.ID, 10)
	return c
}
