package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/client"
	"github.com/dmitrijs2005/storykeeper/internal/client/store"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// SessionStore keeps the signed-in user.
type SessionStore interface {
	SaveSession(ctx context.Context, sess store.Session) error
	Session(ctx context.Context) (store.Session, bool, error)
	ClearSession(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and remember the session.
//   - Register: create a new account; passwords shorter than
//     MinPasswordLength are rejected before any request.
//   - Logout: forget the local session.
//   - Current: the remembered session, if any.
//   - Ping: check server liveness.
type AuthService interface {
	Login(ctx context.Context, email, password string) (store.Session, error)
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (store.Session, bool, error)
	Ping(ctx context.Context) error
}

type authService struct {
	gateway  client.Gateway
	sessions SessionStore
	log      logging.Logger
	timeout  time.Duration
}

func NewAuthService(gateway client.Gateway, sessions SessionStore, log logging.Logger, timeout time.Duration) AuthService {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &authService{gateway: gateway, sessions: sessions, log: log, timeout: timeout}
}

func (a *authService) Login(ctx context.Context, email, password string) (store.Session, error) {
	email = strings.TrimSpace(email)
	if err := validationError(validate.Struct(credentials{Email: email, Password: password})); err != nil {
		return store.Session{}, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	res, err := a.gateway.Login(reqCtx, email, password)
	cancel()
	if err != nil {
		ce := classify(err)
		a.log.Warn(ctx, "login failed", "email", email, "kind", ce.Kind)
		return store.Session{}, ce
	}

	sess := store.Session{UserID: res.UserID, UserName: res.Name, Token: res.Token}
	if err := a.sessions.SaveSession(ctx, sess); err != nil {
		return store.Session{}, classify(err)
	}
	a.log.Info(ctx, "logged in", "user", res.Name)
	return sess, nil
}

func (a *authService) Register(ctx context.Context, name, email, password string) error {
	in := registration{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if err := validationError(validate.Struct(in)); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.gateway.Register(reqCtx, in.Name, in.Email, in.Password); err != nil {
		return classify(err)
	}
	a.log.Info(ctx, "account registered", "email", in.Email)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.ClearSession(ctx); err != nil {
		return classify(err)
	}
	return nil
}

func (a *authService) Current(ctx context.Context) (store.Session, bool, error) {
	sess, ok, err := a.sessions.Session(ctx)
	if err != nil {
		return store.Session{}, false, classify(err)
	}
	return sess, ok, nil
}

func (a *authService) Ping(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := a.gateway.Ping(reqCtx); err != nil {
		return classify(err)
	}
	return nil
}

// MetadataTokenProvider reads the bearer token from the local session.
type MetadataTokenProvider struct {
	sessions SessionStore
	now      func() time.Time
}

func NewMetadataTokenProvider(sessions SessionStore) *MetadataTokenProvider {
	return &MetadataTokenProvider{sessions: sessions, now: time.Now}
}

// Token returns common.ErrNoToken when nobody is signed in and
// common.ErrTokenExpired when the token is a JWT whose exp is in the past.
// Tokens that are not JWTs are passed through as is.
func (p *MetadataTokenProvider) Token(ctx context.Context) (string, error) {
	sess, ok, err := p.sessions.Session(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err != nil {
		return sess.Token, nil
	}
	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil && !exp.After(p.now()) {
		return "", common.ErrTokenExpired
	}
	return sess.Token, nil
}
