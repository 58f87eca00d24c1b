package grpc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	pb "github.com/dmitrijs2005/linekeeper/internal/proto"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func invalid(format string, args ...any) error {
	return status.Errorf(codes.InvalidArgument, format, args...)
}

// stringField reads key as a string. Integral numbers are accepted since
// badge and payroll codes are often typed as numbers. A null or missing
// key is reported as absent.
func stringField(in *structpb.Struct, key string) (string, bool, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return "", false, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "", false, nil
	case *structpb.Value_StringValue:
		return k.StringValue, true, nil
	case *structpb.Value_NumberValue:
		if k.NumberValue == math.Trunc(k.NumberValue) && math.Abs(k.NumberValue) < 1<<53 {
			return strconv.FormatInt(int64(k.NumberValue), 10), true, nil
		}
	}
	return "", false, invalid("field %q must be a string", key)
}

func requiredString(in *structpb.Struct, key string) (string, error) {
	s, ok, err := stringField(in, key)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", invalid("field %q is required", key)
	}
	return s, nil
}

func intField(in *structpb.Struct, key string) (int, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return 0, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, invalid("field %q must be an integer", key)
	}
	return int(n.NumberValue), nil
}

// tableField reads the optional table hint.
func tableField(in *structpb.Struct) (models.Table, error) {
	s, ok, err := stringField(in, pb.KeyTable)
	if err != nil || !ok || s == "" {
		return "", err
	}
	t, err := models.ParseTable(s)
	if err != nil {
		return "", invalid("%v", err)
	}
	return t, nil
}

// decodeFields reads the "fields" struct of a create or update request.
// Unknown keys are rejected.
func decodeFields(in *structpb.Struct) (models.UserFields, error) {
	var f models.UserFields

	v, ok := in.GetFields()[pb.KeyFields]
	if !ok {
		return f, nil
	}
	fs := v.GetStructValue()
	if fs == nil {
		return f, invalid("field %q must be an object", pb.KeyFields)
	}

	known := make(map[string]struct{}, len(pb.FieldKeys))
	for _, k := range pb.FieldKeys {
		known[k] = struct{}{}
	}
	for k := range fs.GetFields() {
		if _, ok := known[k]; !ok {
			return f, invalid("unknown field %q", k)
		}
	}

	targets := map[string]**string{
		pb.KeyEmail:         &f.Email,
		pb.KeySecret:        &f.Secret,
		pb.KeyGivenName:     &f.GivenName,
		pb.KeyFamilyName:    &f.FamilyName,
		pb.KeyPayrollNumber: &f.PayrollNumber,
		pb.KeyBadgeCode:     &f.BadgeCode,
	}
	for key, dst := range targets {
		s, ok, err := stringField(fs, key)
		if err != nil {
			return f, err
		}
		if ok {
			*dst = &s
		}
	}

	s, ok, err := stringField(fs, pb.KeyClassification)
	if err != nil {
		return f, err
	}
	if ok {
		c, err := models.ParseClassification(s)
		if err != nil {
			return f, invalid("%v", err)
		}
		f.Classification = &c
	}
	return f, nil
}

// userValue renders u through its role-specific record shape.
func userValue(u models.User) (map[string]any, error) {
	rec, ok := models.AsRecord(u)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidClassification, string(u.Classification))
	}

	out := map[string]any{pb.KeyTable: string(u.ResidesIn)}
	switch r := rec.(type) {
	case models.AdminRecord:
		out[pb.KeyKind] = string(models.Administrator)
		out[pb.KeyID] = r.ID
		out[pb.KeyEmail] = r.Email
		out[pb.KeyGivenName] = r.GivenName
		out[pb.KeyFamilyName] = r.FamilyName
	case models.QualityRecord:
		out[pb.KeyKind] = string(models.Quality)
		out[pb.KeyID] = r.ID
		out[pb.KeyEmail] = r.Email
		out[pb.KeyGivenName] = r.GivenName
		out[pb.KeyFamilyName] = r.FamilyName
	case models.OperatorRecord:
		out[pb.KeyKind] = string(models.Operator)
		out[pb.KeyID] = r.ID
		out[pb.KeyPayrollNumber] = r.PayrollNumber
		out[pb.KeyBadgeCode] = r.BadgeCode
		out[pb.KeyGivenName] = r.GivenName
		out[pb.KeyFamilyName] = r.FamilyName
	}
	return out, nil
}

func refStruct(ref models.Ref) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{pb.KeyID: ref.ID, pb.KeyTable: string(ref.Table)})
}
