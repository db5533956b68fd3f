// Copyright (C) 2025 The pimctl Authors
//
// This file is part of pimctl.
//
// pimctl is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// pimctl is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/pimctl/pimctl/client/config"
	"github.com/pimctl/pimctl/constants"
)

// tokens are renewed this long before they expire
const expiryMargin = time.Minute

type Token struct {
	AccessToken  string         `json:"access_token"`
	ExpiresIn    IntOrStringInt `json:"expires_in"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	TokenType    string         `json:"token_type"`

	expiresAt time.Time
}

func (s Token) IsExpired(now time.Time) bool {
	return s.AccessToken == "" || !now.Add(expiryMargin).Before(s.expiresAt)
}

// Session holds the credentials of one run and the access tokens issued for them, keyed by scope.
// Every rest client is constructed with the session it authenticates through.
type Session struct {
	config config.Config
	http   *http.Client
	log    logr.Logger
	now    func() time.Time

	mu           sync.Mutex
	tokens       map[string]Token
	refreshToken string
}

func NewSession(config config.Config, log logr.Logger) (*Session, error) {
	if config.Tenant == "" {
		return nil, fmt.Errorf("a tenant is required")
	} else if _, err := url.Parse(config.AuthorityUrl()); err != nil {
		return nil, fmt.Errorf("invalid authority url: %w", err)
	} else if http, err := NewHTTPClient(config.ProxyUrl); err != nil {
		return nil, err
	} else {
		return &Session{
			config:       config,
			http:         http,
			log:          log,
			now:          time.Now,
			tokens:       map[string]Token{},
			refreshToken: config.RefreshToken,
		}, nil
	}
}

func (s *Session) ProxyUrl() string {
	return s.config.ProxyUrl
}

func (s *Session) Tenant() string {
	return s.config.Tenant
}

// Connected reports whether any access token is currently held
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens) > 0
}

// Disconnect forgets every issued token; the next request signs in again
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]Token{}
	s.http.CloseIdleConnections()
	s.log.V(1).Info("session disconnected", "tenant", s.config.Tenant)
}

// Token returns a valid access token for scope, signing in when none is cached
func (s *Session) Token(ctx context.Context, scope string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.tokens[scope]; ok && !token.IsExpired(s.now()) {
		return token.AccessToken, nil
	}

	var (
		token Token
		err   error
	)
	if s.config.JWT != "" {
		token, err = s.staticToken(scope)
	} else {
		token, err = s.requestToken(ctx, scope)
	}
	if err != nil {
		return "", err
	}

	s.tokens[scope] = token
	if token.RefreshToken != "" {
		s.refreshToken = token.RefreshToken
	}
	return token.AccessToken, nil
}

func (s *Session) staticToken(scope string) (Token, error) {
	resource := strings.TrimSuffix(scope, "/.default")
	if aud, err := ParseAud(s.config.JWT); err != nil {
		return Token{}, err
	} else if !strings.EqualFold(aud, resource) {
		return Token{}, fmt.Errorf("provided token is for %s and cannot be used with %s", aud, resource)
	} else if exp, err := ParseExpiry(s.config.JWT); err != nil {
		return Token{}, err
	} else if token := (Token{AccessToken: s.config.JWT, TokenType: "Bearer", expiresAt: exp}); token.IsExpired(s.now()) {
		return Token{}, fmt.Errorf("provided token expired at %s", exp.Format(time.RFC3339))
	} else {
		return token, nil
	}
}

func (s *Session) requestToken(ctx context.Context, scope string) (Token, error) {
	form := url.Values{}
	form.Set("client_id", s.config.ApplicationId)
	form.Set("scope", scope)

	tokenUrl := s.config.TokenUrl()

	switch {
	case s.refreshToken != "":
		form.Set("grant_type", "refresh_token")
		form.Set("refresh_token", s.refreshToken)
	case s.config.ClientSecret != "":
		form.Set("grant_type", "client_credentials")
		form.Set("client_secret", s.config.ClientSecret)
	case s.config.ClientCert != "" && s.config.ClientKey != "":
		if assertion, err := NewClientAssertion(tokenUrl, s.config.ApplicationId, s.config.ClientCert, s.config.ClientKey, s.config.ClientKeyPass); err != nil {
			return Token{}, err
		} else {
			form.Set("grant_type", "client_credentials")
			form.Set("client_assertion_type", "urn:ietf:params:oauth:client-assertion-type:jwt-bearer")
			form.Set("client_assertion", assertion)
		}
	case s.config.Username != "" && s.config.Password != "":
		form.Set("grant_type", "password")
		form.Set("username", s.config.Username)
		form.Set("password", s.config.Password)
	default:
		return Token{}, fmt.Errorf("no credentials configured: provide a token, refresh token, client secret, client certificate or username and password")
	}

	s.log.V(1).Info("requesting access token", "grantType", form.Get("grant_type"), "scope", scope)

	if req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenUrl, strings.NewReader(form.Encode())); err != nil {
		return Token{}, err
	} else {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", constants.UserAgent())

		if res, err := s.http.Do(req); err != nil {
			return Token{}, &TransportError{Method: req.Method, Url: tokenUrl, Err: err}
		} else if res.StatusCode != http.StatusOK {
			return Token{}, newStatusError(req, res)
		} else {
			var token Token
			if err := Decode(res.Body, &token); err != nil {
				return Token{}, fmt.Errorf("malformed token response: %w", err)
			}
			if token.ExpiresIn > 0 {
				token.expiresAt = s.now().Add(time.Duration(token.ExpiresIn) * time.Second)
			} else if exp, err := ParseExpiry(token.AccessToken); err != nil {
				s.log.V(1).Info("token response carries no expiry; token will not be cached", "scope", scope, "err", err)
				token.expiresAt = s.now()
			} else {
				token.expiresAt = exp
			}
			return token, nil
		}
	}
}
