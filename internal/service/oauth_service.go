package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-webchat-be/internal/config"
	"ai-webchat-be/internal/entity"
	"ai-webchat-be/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type IOAuthService interface {
	GetLoginURL() string
	HandleCallback(ctx context.Context, code string) (*entity.User, error)
	GuestUser() *entity.User
}

type oauthService struct {
	conf   *oauth2.Config
	client *http.Client
	log    logger.ILogger
}

func NewOAuthService(cfg config.OAuthConfig, log logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		conf:   conf,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

func (s *oauthService) GetLoginURL() string {
	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.conf.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code and resolves the user's
// profile, preferring the claims embedded in the id_token and falling back to
// the userinfo endpoint. A profile without an email is treated as a failure.
func (s *oauthService) HandleCallback(ctx context.Context, code string) (*entity.User, error) {
	token, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	user := s.userFromIDToken(token)
	if user == nil {
		user, err = s.fetchUserInfo(ctx, token.AccessToken)
		if err != nil {
			return nil, err
		}
	}

	if user.Email == "" {
		return nil, errors.New("provider profile has no email")
	}

	s.log.Info("oauth", "User authenticated", map[string]interface{}{
		"email": user.Email,
	})
	return user, nil
}

func (s *oauthService) GuestUser() *entity.User {
	return &entity.User{
		ID:      "guest",
		Email:   "guest@example.com",
		Name:    "Guest User",
		Picture: "",
		IsGuest: true,
	}
}

// userFromIDToken pulls the profile out of the id_token when the provider
// sent one. The token arrived over TLS straight from the token endpoint, so
// the claims are read without signature verification.
func (s *oauthService) userFromIDToken(token *oauth2.Token) *entity.User {
	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		s.log.Warn("oauth", "Could not parse id_token, falling back to userinfo", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil
	}
	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &entity.User{
		ID:      sub,
		Email:   email,
		Name:    name,
		Picture: picture,
	}
}

func (s *oauthService) fetchUserInfo(ctx context.Context, accessToken string) (*entity.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading userinfo response: %w", err)
	}

	var profile struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo: %w", err)
	}

	return &entity.User{
		ID:      profile.ID,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	}, nil
}
