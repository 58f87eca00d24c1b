package grpc

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/dbx"
	"github.com/dmitrijs2005/linekeeper/internal/logging"
	pb "github.com/dmitrijs2005/linekeeper/internal/proto"
	"github.com/dmitrijs2005/linekeeper/internal/server/config"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linekeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// startServer runs the full stack over an in-memory listener backed by a
// fresh sqlite database with a bootstrap administrator.
func startServer(t *testing.T) pb.UserAdminClient {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db, err := dbx.Open(ctx, dbx.SQLite, filepath.Join(t.TempDir(), "grpc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	reg := repomanager.NewRegistry(dbx.SQLite, db, repomanager.DefaultNames)
	require.NoError(t, reg.RunMigrations(ctx, db))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	us := services.NewUserService(db, reg, cfg, logging.Nop())
	as := services.NewAuthService(db, reg, cfg, logging.Nop())
	_, err = us.Bootstrap(ctx, "root@x.com", "rootpw")
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer("bufnet", logging.Nop(), us, as, cfg.SecretKey)
	go func() { _ = srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return pb.NewUserAdminClient(conn)
}

func msg(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	return mustStruct(t, m)
}

func login(t *testing.T, c pb.UserAdminClient, email, secret string) context.Context {
	t.Helper()
	resp, err := c.Login(context.Background(), msg(t, map[string]any{"email": email, "secret": secret}))
	require.NoError(t, err)
	tok := resp.GetFields()["access_token"].GetStringValue()
	require.NotEmpty(t, tok)
	return metadata.AppendToOutgoingContext(context.Background(), "access_token", tok)
}

func TestEndToEnd_MigrationScenario(t *testing.T) {
	c := startServer(t)

	pong, err := c.Ping(context.Background(), &structpb.Struct{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.GetFields()["status"].GetStringValue())

	ctx := login(t, c, "root@x.com", "rootpw")

	created, err := c.CreateUser(ctx, msg(t, map[string]any{"fields": map[string]any{
		"email": "a@x.com", "secret": "pw123456", "classification": "administrator",
	}}))
	require.NoError(t, err)
	assert.Equal(t, "staff", created.GetFields()["table"].GetStringValue())
	id := created.GetFields()["id"].GetStringValue()

	moved, err := c.UpdateUser(ctx, msg(t, map[string]any{
		"id": id, "table": "staff",
		"fields": map[string]any{"classification": "operator", "badge_code": "445566"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "operators", moved.GetFields()["table"].GetStringValue())
	newID := moved.GetFields()["id"].GetStringValue()

	_, err = c.GetUser(ctx, msg(t, map[string]any{"id": id, "table": "staff"}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	got, err := c.GetUser(ctx, msg(t, map[string]any{"id": newID, "table": "operators"}))
	require.NoError(t, err)
	user := got.GetFields()["user"].GetStructValue().GetFields()
	assert.Equal(t, "operator", user["kind"].GetStringValue())
	assert.Equal(t, "445566", user["badge_code"].GetStringValue())
	assert.NotContains(t, user, "secret")

	list, err := c.ListUsers(ctx, &structpb.Struct{})
	require.NoError(t, err)
	assert.Len(t, list.GetFields()["users"].GetListValue().GetValues(), 2)

	_, err = c.DeleteUser(ctx, msg(t, map[string]any{"id": newID, "table": "operators"}))
	require.NoError(t, err)
	_, err = c.DeleteUser(ctx, msg(t, map[string]any{"id": newID, "table": "operators"}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestEndToEnd_Authorization(t *testing.T) {
	c := startServer(t)
	admin := login(t, c, "root@x.com", "rootpw")

	_, err := c.ListUsers(context.Background(), &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.Login(context.Background(), msg(t, map[string]any{"email": "root@x.com", "secret": "nope"}))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.CreateUser(admin, msg(t, map[string]any{"fields": map[string]any{
		"email": "q@x.com", "secret": "qpw", "classification": "quality",
	}}))
	require.NoError(t, err)
	_, err = c.CreateUser(admin, msg(t, map[string]any{"fields": map[string]any{
		"badge_code": "777", "classification": "operator",
	}}))
	require.NoError(t, err)

	qa := login(t, c, "q@x.com", "qpw")
	_, err = c.ListUsers(qa, &structpb.Struct{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	resp, err := c.LoginBadge(context.Background(), msg(t, map[string]any{"badge_code": "777"}))
	require.NoError(t, err)
	op := metadata.AppendToOutgoingContext(context.Background(), "access_token", resp.GetFields()["access_token"].GetStringValue())
	_, err = c.DeleteUser(op, msg(t, map[string]any{"id": "1", "table": "staff"}))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestEndToEnd_ValidationAndAborts(t *testing.T) {
	c := startServer(t)
	ctx := login(t, c, "root@x.com", "rootpw")

	_, err := c.CreateUser(ctx, msg(t, map[string]any{"fields": map[string]any{"classification": "operator"}}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.CreateUser(ctx, msg(t, map[string]any{"fields": map[string]any{"badge_code": "1", "classification": "janitor"}}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.CreateUser(ctx, msg(t, map[string]any{"fields": map[string]any{"badge_code": "1", "classification": "operator"}}))
	require.NoError(t, err)

	_, err = c.UpdateUser(ctx, msg(t, map[string]any{
		"id": "1", "table": "staff",
		"fields": map[string]any{"classification": "operator", "badge_code": "1"},
	}))
	assert.Equal(t, codes.Aborted, status.Code(err))

	_, err = c.GetUser(ctx, msg(t, map[string]any{"id": "1", "table": "staff"}))
	require.NoError(t, err, "the bootstrap administrator is still in place")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop(), nil, nil, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), nil, nil, "secret")
	require.Error(t, srv.Run(context.Background()))
}
