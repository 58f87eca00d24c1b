package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/logging"
	pb "github.com/dmitrijs2005/linekeeper/internal/proto"
	"github.com/dmitrijs2005/linekeeper/internal/server/auth"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	callerKey    ctxKey = "caller"
	requestIDKey ctxKey = "request_id"
)

const requestIDHeader = "x-request-id"

// openMethods are served without an access token.
var openMethods = map[string]struct{}{
	pb.FullMethod(pb.MethodPing):       {},
	pb.FullMethod(pb.MethodLogin):      {},
	pb.FullMethod(pb.MethodLoginBadge): {},
}

// requestIDInterceptor tags every call with a request id, echoes it in
// the response header and logs the outcome.
func (s *GRPCServer) requestIDInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	id := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey, id)
	ctx = logging.ContextWith(ctx, "request_id", id, "method", info.FullMethod)
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, id))

	resp, err := handler(ctx, req)

	code := status.Code(err)
	if code == codes.Internal || code == codes.Unavailable {
		s.logger.Error(ctx, "request failed", "code", code.String())
	} else {
		s.logger.Debug(ctx, "request", "code", code.String())
	}
	return resp, err
}

// accessTokenInterceptor turns the access token into a models.Caller for
// every method outside openMethods.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, open := openMethods[info.FullMethod]; open {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	caller, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(context.WithValue(ctx, callerKey, caller), req)
}

// callerFrom returns the caller set by accessTokenInterceptor. Without
// one the zero Caller is returned, which is never an administrator.
func callerFrom(ctx context.Context) models.Caller {
	c, _ := ctx.Value(callerKey).(models.Caller)
	return c
}
