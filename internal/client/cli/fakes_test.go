package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophkms/internal/client/config"
	"github.com/dmitrijs2005/gophkms/internal/common"
)

type fakeAuth struct {
	calls    []string
	emails   []string
	codes    []string
	password string
	loggedIn bool
	err      error

	mu      sync.Mutex
	pingErr error
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

func (f *fakeAuth) Register(ctx context.Context, email string, password []byte) (string, error) {
	f.calls = append(f.calls, "Register")
	f.emails = append(f.emails, email)
	f.password = string(password)
	return common.StatusRegistrationPending, f.err
}
func (f *fakeAuth) ConfirmRegistration(ctx context.Context, email, otp string) (string, error) {
	f.calls = append(f.calls, "ConfirmRegistration")
	f.emails = append(f.emails, email)
	f.codes = append(f.codes, otp)
	return common.StatusRegistrationSuccess, f.err
}
func (f *fakeAuth) Login(ctx context.Context, email string, password []byte) (string, error) {
	f.calls = append(f.calls, "Login")
	f.emails = append(f.emails, email)
	f.password = string(password)
	return common.StatusLoginOTPSent, f.err
}
func (f *fakeAuth) ConfirmLogin(ctx context.Context, email, otp string) (string, error) {
	f.calls = append(f.calls, "ConfirmLogin")
	f.emails = append(f.emails, email)
	f.codes = append(f.codes, otp)
	if f.err == nil {
		f.loggedIn = true
	}
	return common.StatusLoginSuccess, f.err
}
func (f *fakeAuth) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "Logout")
	f.loggedIn = false
	return f.err
}
func (f *fakeAuth) LoggedIn() bool { return f.loggedIn }
func (f *fakeAuth) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}
func (f *fakeAuth) Close(ctx context.Context) error {
	f.calls = append(f.calls, "Close")
	return nil
}

type fakeKeys struct {
	calls []string
	args  [][]string
	err   error
}

func (f *fakeKeys) rec(name string, args ...string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeKeys) Issue(ctx context.Context, r string) (string, error) {
	f.rec("Issue", r)
	return "-----BEGIN PUBLIC KEY-----\n", f.err
}
func (f *fakeKeys) PublicKey(ctx context.Context, r string) (string, error) {
	f.rec("PublicKey", r)
	return "PUB\n", f.err
}
func (f *fakeKeys) PrivateKey(ctx context.Context, r string) (string, error) {
	f.rec("PrivateKey", r)
	return "PRIV\n", f.err
}
func (f *fakeKeys) Grant(ctx context.Context, r, g string) (string, error) {
	f.rec("Grant", r, g)
	return common.StatusGrantSuccess, f.err
}
func (f *fakeKeys) Members(ctx context.Context, r string) ([]string, error) {
	f.rec("Members", r)
	return []string{"a@x.io", "b@x.io"}, f.err
}
func (f *fakeKeys) UploadFile(ctx context.Context, r, p string) error {
	f.rec("UploadFile", r, p)
	return f.err
}
func (f *fakeKeys) DownloadFile(ctx context.Context, r, p string) error {
	f.rec("DownloadFile", r, p)
	return f.err
}

func newTestApp(input string) (*App, *fakeAuth, *fakeKeys, *bytes.Buffer) {
	fa, fk := &fakeAuth{}, &fakeKeys{}
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:      cfg,
		authService: fa,
		keyService:  fk,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
	}, fa, fk, out
}
