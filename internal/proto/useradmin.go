// Package proto describes the linekeeper.v1.UserAdmin gRPC service.
//
// Messages are google.protobuf.Struct values keyed by the constants below,
// so the service needs no generated message types. The server and client
// stubs mirror what protoc-gen-go-grpc would emit.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "linekeeper.v1.UserAdmin"

const (
	MethodPing       = "Ping"
	MethodLogin      = "Login"
	MethodLoginBadge = "LoginBadge"
	MethodListUsers  = "ListUsers"
	MethodGetUser    = "GetUser"
	MethodCreateUser = "CreateUser"
	MethodUpdateUser = "UpdateUser"
	MethodDeleteUser = "DeleteUser"
)

// Message keys.
const (
	KeyStatus         = "status"
	KeyAccessToken    = "access_token"
	KeyLimit          = "limit"
	KeyUsers          = "users"
	KeyUser           = "user"
	KeyFields         = "fields"
	KeyID             = "id"
	KeyTable          = "table"
	KeyKind           = "kind"
	KeyEmail          = "email"
	KeySecret         = "secret"
	KeyGivenName      = "given_name"
	KeyFamilyName     = "family_name"
	KeyPayrollNumber  = "payroll_number"
	KeyBadgeCode      = "badge_code"
	KeyClassification = "classification"
)

// FieldKeys are the keys accepted inside a "fields" struct.
var FieldKeys = []string{KeyEmail, KeySecret, KeyGivenName, KeyFamilyName, KeyPayrollNumber, KeyBadgeCode, KeyClassification}

// FullMethod returns the gRPC method path, e.g. "/linekeeper.v1.UserAdmin/Ping".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// UserAdminServer is the server API for the UserAdmin service.
type UserAdminServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LoginBadge(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListUsers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedUserAdminServer answers every method with codes.Unimplemented.
type UnimplementedUserAdminServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedUserAdminServer) Ping(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedUserAdminServer) Login(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodLogin)
}
func (UnimplementedUserAdminServer) LoginBadge(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodLoginBadge)
}
func (UnimplementedUserAdminServer) ListUsers(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListUsers)
}
func (UnimplementedUserAdminServer) GetUser(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetUser)
}
func (UnimplementedUserAdminServer) CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodCreateUser)
}
func (UnimplementedUserAdminServer) UpdateUser(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodUpdateUser)
}
func (UnimplementedUserAdminServer) DeleteUser(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodDeleteUser)
}

type unaryMethod func(UserAdminServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(UserAdminServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(UserAdminServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// UserAdmin_ServiceDesc is the grpc.ServiceDesc for the UserAdmin service.
var UserAdmin_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, UserAdminServer.Ping),
		unary(MethodLogin, UserAdminServer.Login),
		unary(MethodLoginBadge, UserAdminServer.LoginBadge),
		unary(MethodListUsers, UserAdminServer.ListUsers),
		unary(MethodGetUser, UserAdminServer.GetUser),
		unary(MethodCreateUser, UserAdminServer.CreateUser),
		unary(MethodUpdateUser, UserAdminServer.UpdateUser),
		unary(MethodDeleteUser, UserAdminServer.DeleteUser),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "linekeeper/v1/useradmin",
}

func RegisterUserAdminServer(s grpc.ServiceRegistrar, srv UserAdminServer) {
	s.RegisterService(&UserAdmin_ServiceDesc, srv)
}

// UserAdminClient is the client API for the UserAdmin service.
type UserAdminClient interface {
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	LoginBadge(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListUsers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type userAdminClient struct {
	cc grpc.ClientConnInterface
}

func NewUserAdminClient(cc grpc.ClientConnInterface) UserAdminClient {
	return &userAdminClient{cc: cc}
}

func (c *userAdminClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userAdminClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPing, in, opts)
}
func (c *userAdminClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodLogin, in, opts)
}
func (c *userAdminClient) LoginBadge(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodLoginBadge, in, opts)
}
func (c *userAdminClient) ListUsers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListUsers, in, opts)
}
func (c *userAdminClient) GetUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetUser, in, opts)
}
func (c *userAdminClient) CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCreateUser, in, opts)
}
func (c *userAdminClient) UpdateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateUser, in, opts)
}
func (c *userAdminClient) DeleteUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodDeleteUser, in, opts)
}
