// Package services contains server-side business logic. This file
// implements BrokerService: two-step registration and login gated by
// emailed one-time codes, session issuance, and per-resource key access.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/cryptox"
	"github.com/dmitrijs2005/gophkms/internal/logging"
	"github.com/dmitrijs2005/gophkms/internal/server/mail"
	"github.com/dmitrijs2005/gophkms/internal/server/users"
)

// ChallengeStore keeps one pending one-time code per email.
type ChallengeStore interface {
	Start(ctx context.Context, email, payload string, ttl time.Duration) (string, error)
	Check(ctx context.Context, email, code string) (string, error)
	Pending(ctx context.Context, email string) (bool, error)
}

type SessionManager interface {
	Issue(ctx context.Context, email string, ttl time.Duration) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type KeyLedger interface {
	IssueKeyPair(ctx context.Context, name, owner string) (*cryptox.KeyPair, error)
	PublicKey(ctx context.Context, name string) (string, error)
	PrivateKey(ctx context.Context, name, requester string) (string, error)
	GrantAccess(ctx context.Context, name, owner, grantee string) error
	Members(ctx context.Context, name, owner string) ([]string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// BrokerDeps are the collaborators of BrokerService.
type BrokerDeps struct {
	Users         users.Repository
	Registrations ChallengeStore
	Logins        ChallengeStore
	Sessions      SessionManager
	Ledger        KeyLedger
	Hasher        PasswordHasher
	Mail          mail.Relay
}

// BrokerTTLs are the lifetimes of pending challenges and sessions.
type BrokerTTLs struct {
	Registration time.Duration
	Login        time.Duration
	Session      time.Duration
}

type BrokerService struct {
	deps   BrokerDeps
	ttls   BrokerTTLs
	logger logging.Logger

	// dummyHash is verified against when the account does not exist, so a
	// failed login costs the same either way.
	dummyHash func() string
}

func NewBrokerService(deps BrokerDeps, ttls BrokerTTLs, logger logging.Logger) *BrokerService {
	s := &BrokerService{deps: deps, ttls: ttls, logger: logger.With("module", "broker")}
	s.dummyHash = sync.OnceValue(func() string {
		h, err := deps.Hasher.Hash("gophkms-no-such-account")
		if err != nil {
			return ""
		}
		return h
	})
	return s
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *BrokerService) sendCode(ctx context.Context, email, code string) error {
	subject, body := mail.CodeMessage(code)
	if err := s.deps.Mail.Send(ctx, email, subject, body); err != nil {
		s.logger.Warn(ctx, "code delivery failed", "email", email, "error", err)
		return fmt.Errorf("%w: %v", common.ErrMailDelivery, err)
	}
	return nil
}

// Register starts a registration for email. It fails with
// common.ErrUserExists if the account exists or a registration for it is
// already pending.
func (s *BrokerService) Register(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return common.ErrInvalidArgument
	}

	exists, err := s.deps.Users.Exists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrUserExists
	}

	pending, err := s.deps.Registrations.Pending(ctx, email)
	if err != nil {
		return err
	}
	// A pending registration holds the email until it expires, even after
	// a failed mail delivery. Only login re-issues a code on retry.
	if pending {
		return common.ErrUserExists
	}

	hash, err := s.deps.Hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	code, err := s.deps.Registrations.Start(ctx, email, hash, s.ttls.Registration)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "registration pending", "email", email)
	return s.sendCode(ctx, email, code)
}

// ConfirmRegistration creates the account if code matches the pending
// registration. The pending registration is gone afterwards either way.
func (s *BrokerService) ConfirmRegistration(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)
	if email == "" || code == "" {
		return common.ErrInvalidArgument
	}

	hash, err := s.deps.Registrations.Check(ctx, email, code)
	switch {
	case errors.Is(err, common.ErrNoPending):
		return common.ErrNoPendingRegistration
	case errors.Is(err, common.ErrCodeMismatch):
		s.logger.Info(ctx, "registration code mismatch", "email", email)
		return common.ErrOTPFailed
	case err != nil:
		return err
	}

	if _, err := s.deps.Users.Create(ctx, email, hash); err != nil {
		return err
	}

	s.logger.Info(ctx, "user registered", "email", email)
	return nil
}

// Login verifies the password and mails a login code. Unknown accounts
// and wrong passwords are indistinguishable.
func (s *BrokerService) Login(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return common.ErrInvalidArgument
	}

	hash, err := s.deps.Users.PasswordHash(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.deps.Hasher.Verify(password, s.dummyHash())
			return common.ErrLoginFailed
		}
		return err
	}

	if !s.deps.Hasher.Verify(password, hash) {
		s.logger.Info(ctx, "login rejected", "email", email)
		return common.ErrLoginFailed
	}

	code, err := s.deps.Logins.Start(ctx, email, "", s.ttls.Login)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "login code issued", "email", email)
	return s.sendCode(ctx, email, code)
}

// ConfirmLogin checks the login code and returns a new session token.
func (s *BrokerService) ConfirmLogin(ctx context.Context, email, code string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" || code == "" {
		return "", common.ErrInvalidArgument
	}

	if _, err := s.deps.Logins.Check(ctx, email, code); err != nil {
		if errors.Is(err, common.ErrNoPending) || errors.Is(err, common.ErrCodeMismatch) {
			return "", common.ErrOTPFailed
		}
		return "", err
	}

	sid, err := s.deps.Sessions.Issue(ctx, email, s.ttls.Session)
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "session issued", "email", email)
	return sid, nil
}

// Logout revokes sid. Unknown sessions are not an error.
func (s *BrokerService) Logout(ctx context.Context, sid string) error {
	return s.deps.Sessions.Revoke(ctx, sid)
}

func (s *BrokerService) resolve(ctx context.Context, sid, name string) (string, error) {
	email, err := s.deps.Sessions.Resolve(ctx, sid)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		return "", common.ErrInvalidArgument
	}
	return email, nil
}

// IssueKeyPair creates the key pair for resource name owned by the
// session's user and returns its public key.
func (s *BrokerService) IssueKeyPair(ctx context.Context, sid, name string) (string, error) {
	email, err := s.resolve(ctx, sid, name)
	if err != nil {
		return "", err
	}

	kp, err := s.deps.Ledger.IssueKeyPair(ctx, name, email)
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "key pair issued", "resource", name, "owner", email)
	return kp.Public, nil
}

func (s *BrokerService) FetchPublicKey(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", common.ErrInvalidArgument
	}
	return s.deps.Ledger.PublicKey(ctx, name)
}

func (s *BrokerService) FetchPrivateKey(ctx context.Context, sid, name string) (string, error) {
	email, err := s.resolve(ctx, sid, name)
	if err != nil {
		return "", err
	}

	priv, err := s.deps.Ledger.PrivateKey(ctx, name, email)
	if err != nil {
		if errors.Is(err, common.ErrAccessDenied) {
			s.logger.Warn(ctx, "private key access denied", "resource", name, "requester", email)
		}
		return "", err
	}

	s.logger.Info(ctx, "private key released", "resource", name, "requester", email)
	return priv, nil
}

func (s *BrokerService) GrantAccess(ctx context.Context, sid, name, grantee string) error {
	email, err := s.resolve(ctx, sid, name)
	if err != nil {
		return err
	}
	grantee = NormalizeEmail(grantee)
	if grantee == "" {
		return common.ErrInvalidArgument
	}

	if err := s.deps.Ledger.GrantAccess(ctx, name, email, grantee); err != nil {
		return err
	}

	s.logger.Info(ctx, "access granted", "resource", name, "owner", email, "grantee", grantee)
	return nil
}

func (s *BrokerService) ListAccess(ctx context.Context, sid, name string) ([]string, error) {
	email, err := s.resolve(ctx, sid, name)
	if err != nil {
		return nil, err
	}
	return s.deps.Ledger.Members(ctx, name, email)
}
