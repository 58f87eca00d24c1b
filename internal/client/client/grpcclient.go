package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	pb "github.com/dmitrijs2005/linekeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.UserAdminClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

// NewUserAdminClient prepares a client for endpointURL. The connection is
// established lazily on the first call.
func NewUserAdminClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewUserAdminClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) SetAccessToken(token string) {
	s.accessToken = token
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &structpb.Struct{})
	return s.mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, email, secret string) (string, error) {
	req, err := structpb.NewStruct(map[string]any{pb.KeyEmail: email, pb.KeySecret: secret})
	if err != nil {
		return "", err
	}
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}
	return s.takeToken(resp)
}

func (s *GRPCClient) LoginBadge(ctx context.Context, badgeCode string) (string, error) {
	req, err := structpb.NewStruct(map[string]any{pb.KeyBadgeCode: badgeCode})
	if err != nil {
		return "", err
	}
	resp, err := s.client.LoginBadge(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}
	return s.takeToken(resp)
}

func (s *GRPCClient) takeToken(resp *structpb.Struct) (string, error) {
	token := resp.GetFields()[pb.KeyAccessToken].GetStringValue()
	if token == "" {
		return "", fmt.Errorf("%w: no access token", ErrMalformed)
	}
	s.accessToken = token
	return token, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context, limit int) ([]User, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if limit > 0 {
		req.Fields[pb.KeyLimit] = structpb.NewNumberValue(float64(limit))
	}

	resp, err := s.client.ListUsers(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	values := resp.GetFields()[pb.KeyUsers].GetListValue().GetValues()
	users := make([]User, 0, len(values))
	for _, v := range values {
		st := v.GetStructValue()
		if st == nil {
			return nil, fmt.Errorf("%w: user is not an object", ErrMalformed)
		}
		users = append(users, userFrom(st))
	}
	return users, nil
}

func (s *GRPCClient) GetUser(ctx context.Context, id, table string) (User, error) {
	resp, err := s.client.GetUser(ctx, locator(id, table))
	if err != nil {
		return User{}, s.mapError(err)
	}
	st := resp.GetFields()[pb.KeyUser].GetStructValue()
	if st == nil {
		return User{}, fmt.Errorf("%w: no user", ErrMalformed)
	}
	return userFrom(st), nil
}

func (s *GRPCClient) CreateUser(ctx context.Context, fields Fields) (Ref, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{pb.KeyFields: fieldsValue(fields)}}
	resp, err := s.client.CreateUser(ctx, req)
	if err != nil {
		return Ref{}, s.mapError(err)
	}
	return refFrom(resp), nil
}

func (s *GRPCClient) UpdateUser(ctx context.Context, id, table string, fields Fields) (Ref, error) {
	req := locator(id, table)
	req.Fields[pb.KeyFields] = fieldsValue(fields)
	resp, err := s.client.UpdateUser(ctx, req)
	if err != nil {
		return Ref{}, s.mapError(err)
	}
	return refFrom(resp), nil
}

func (s *GRPCClient) DeleteUser(ctx context.Context, id, table string) error {
	_, err := s.client.DeleteUser(ctx, locator(id, table))
	return s.mapError(err)
}

func locator(id, table string) *structpb.Struct {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{pb.KeyID: structpb.NewStringValue(id)}}
	if table != "" {
		req.Fields[pb.KeyTable] = structpb.NewStringValue(table)
	}
	return req
}

func fieldsValue(fields Fields) *structpb.Value {
	st := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		st.Fields[k] = structpb.NewStringValue(v)
	}
	return structpb.NewStructValue(st)
}

func userFrom(st *structpb.Struct) User {
	get := func(key string) string { return st.GetFields()[key].GetStringValue() }
	return User{
		ID:            get(pb.KeyID),
		Table:         get(pb.KeyTable),
		Kind:          get(pb.KeyKind),
		Email:         get(pb.KeyEmail),
		GivenName:     get(pb.KeyGivenName),
		FamilyName:    get(pb.KeyFamilyName),
		PayrollNumber: get(pb.KeyPayrollNumber),
		BadgeCode:     get(pb.KeyBadgeCode),
	}
}

func refFrom(st *structpb.Struct) Ref {
	return Ref{
		ID:    st.GetFields()[pb.KeyID].GetStringValue(),
		Table: st.GetFields()[pb.KeyTable].GetStringValue(),
	}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
