package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/client/client"
	"github.com/dmitrijs2005/linekeeper/internal/client/config"
)

type fakeClient struct {
	closed bool
	token  string

	gotEmail, gotSecret, gotBadge string
	gotLimit                      int
	gotID, gotTable               string
	gotFields                     client.Fields
	hadDeadline                   bool

	users []client.User
	user  client.User
	ref   client.Ref
	err   error
}

func (f *fakeClient) Close() error               { f.closed = true; return nil }
func (f *fakeClient) SetAccessToken(token string) { f.token = token }

func (f *fakeClient) seen(ctx context.Context) {
	_, f.hadDeadline = ctx.Deadline()
}

func (f *fakeClient) Ping(ctx context.Context) error { f.seen(ctx); return f.err }

func (f *fakeClient) Login(ctx context.Context, email, secret string) (string, error) {
	f.seen(ctx)
	f.gotEmail, f.gotSecret = email, secret
	if f.err != nil {
		return "", f.err
	}
	f.token = "tok-" + email
	return f.token, nil
}

func (f *fakeClient) LoginBadge(ctx context.Context, badgeCode string) (string, error) {
	f.seen(ctx)
	f.gotBadge = badgeCode
	if f.err != nil {
		return "", f.err
	}
	f.token = "badge-" + badgeCode
	return f.token, nil
}

func (f *fakeClient) ListUsers(ctx context.Context, limit int) ([]client.User, error) {
	f.seen(ctx)
	f.gotLimit = limit
	return f.users, f.err
}

func (f *fakeClient) GetUser(ctx context.Context, id, table string) (client.User, error) {
	f.seen(ctx)
	f.gotID, f.gotTable = id, table
	return f.user, f.err
}

func (f *fakeClient) CreateUser(ctx context.Context, fields client.Fields) (client.Ref, error) {
	f.seen(ctx)
	f.gotFields = fields
	return f.ref, f.err
}

func (f *fakeClient) UpdateUser(ctx context.Context, id, table string, fields client.Fields) (client.Ref, error) {
	f.seen(ctx)
	f.gotID, f.gotTable, f.gotFields = id, table, fields
	return f.ref, f.err
}

func (f *fakeClient) DeleteUser(ctx context.Context, id, table string) error {
	f.seen(ctx)
	f.gotID, f.gotTable = id, table
	return f.err
}

type harness struct {
	app    *App
	fake   *fakeClient
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	h := &harness{fake: &fakeClient{}, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	cfg := &config.Config{ServerEndpointAddr: "unused", Timeout: time.Second}
	h.app = newApp(cfg, h.fake, strings.NewReader(input), h.out, h.errOut)
	return h
}

// stubPassword replaces the terminal reader for the duration of a test.
func stubPassword(t *testing.T, secret string) *int {
	t.Helper()
	calls := 0
	old := readPassword
	readPassword = func(int) ([]byte, error) {
		calls++
		return []byte(secret), nil
	}
	t.Cleanup(func() { readPassword = old })
	return &calls
}
