package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/linekeeper/internal/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{pb.KeyStatus: "OK"})
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email, _, err := stringField(req, pb.KeyEmail)
	if err != nil {
		return nil, err
	}
	secret, _, err := stringField(req, pb.KeySecret)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.LoginPassword(ctx, email, secret)
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{pb.KeyAccessToken: token})
}

func (s *GRPCServer) LoginBadge(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	badge, _, err := stringField(req, pb.KeyBadgeCode)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.LoginBadge(ctx, badge)
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{pb.KeyAccessToken: token})
}

func (s *GRPCServer) ListUsers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit, err := intField(req, pb.KeyLimit)
	if err != nil {
		return nil, err
	}

	list, err := s.users.ListUsers(ctx, callerFrom(ctx), limit)
	if err != nil {
		return nil, toStatus(err)
	}

	users := make([]any, 0, len(list))
	for _, u := range list {
		v, err := userValue(u)
		if err != nil {
			return nil, toStatus(err)
		}
		users = append(users, v)
	}
	return structpb.NewStruct(map[string]any{pb.KeyUsers: users})
}

func (s *GRPCServer) GetUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, pb.KeyID)
	if err != nil {
		return nil, err
	}
	table, err := tableField(req)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetUser(ctx, callerFrom(ctx), id, table)
	if err != nil {
		return nil, toStatus(err)
	}
	v, err := userValue(u)
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{pb.KeyUser: v})
}

func (s *GRPCServer) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields, err := decodeFields(req)
	if err != nil {
		return nil, err
	}

	ref, err := s.users.CreateUser(ctx, callerFrom(ctx), fields)
	if err != nil {
		return nil, toStatus(err)
	}
	return refStruct(ref)
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, pb.KeyID)
	if err != nil {
		return nil, err
	}
	table, err := tableField(req)
	if err != nil {
		return nil, err
	}
	fields, err := decodeFields(req)
	if err != nil {
		return nil, err
	}

	ref, err := s.users.UpdateUser(ctx, callerFrom(ctx), id, table, fields)
	if err != nil {
		return nil, toStatus(err)
	}
	return refStruct(ref)
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, pb.KeyID)
	if err != nil {
		return nil, err
	}
	table, err := tableField(req)
	if err != nil {
		return nil, err
	}

	if err := s.users.DeleteUser(ctx, callerFrom(ctx), id, table); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{}, nil
}
