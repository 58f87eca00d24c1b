// Package grpc exposes the user record services over the UserAdmin gRPC
// service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/linekeeper/internal/logging"
	pb "github.com/dmitrijs2005/linekeeper/internal/proto"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"google.golang.org/grpc"
)

// UserManager is the administrator surface the handlers call.
type UserManager interface {
	ListUsers(ctx context.Context, caller models.Caller, limit int) ([]models.User, error)
	GetUser(ctx context.Context, caller models.Caller, id string, known models.Table) (models.User, error)
	CreateUser(ctx context.Context, caller models.Caller, f models.UserFields) (models.Ref, error)
	UpdateUser(ctx context.Context, caller models.Caller, id string, known models.Table, f models.UserFields) (models.Ref, error)
	DeleteUser(ctx context.Context, caller models.Caller, id string, known models.Table) error
}

// Authenticator issues access tokens.
type Authenticator interface {
	LoginPassword(ctx context.Context, email, secret string) (string, error)
	LoginBadge(ctx context.Context, badge string) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedUserAdminServer
	address   string
	users     UserManager
	auth      Authenticator
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserManager, as Authenticator, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		auth:      as,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.accessTokenInterceptor))
	pb.RegisterUserAdminServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
