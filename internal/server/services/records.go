package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/dmitrijs2005/linekeeper/internal/server/columns"
	"github.com/dmitrijs2005/linekeeper/internal/server/models"
	"github.com/dmitrijs2005/linekeeper/internal/server/repositories/users"
)

// required lists the roles a row must carry in each table.
var required = map[models.Table][]columns.Role{
	models.TableStaff:     {columns.Email, columns.Secret},
	models.TableOperators: {columns.BadgeCode},
}

// fieldValues converts the supplied non-secret fields of f. Classification
// is handled by setClassification since not every table stores it.
func fieldValues(f models.UserFields) users.Values {
	v := users.Values{}
	put := func(r columns.Role, s *string) {
		if s != nil {
			v[r] = strings.TrimSpace(*s)
		}
	}
	put(columns.Email, f.Email)
	put(columns.GivenName, f.GivenName)
	put(columns.FamilyName, f.FamilyName)
	put(columns.PayrollNumber, f.PayrollNumber)
	put(columns.BadgeCode, f.BadgeCode)
	return v
}

func setClassification(m columns.ColumnMap, v users.Values, c models.Classification) {
	if m.Has(columns.Classification) {
		v[columns.Classification] = c.StoredForm()
	}
}

// checkRequired validates v for table t. A whole row (create, migration)
// must carry every required role; a partial update may only not clear
// one. A required role the table has no column for is a schema mismatch.
func checkRequired(t models.Table, m columns.ColumnMap, v users.Values, wholeRow bool) error {
	var missing []string
	for _, r := range required[t] {
		if !m.Has(r) {
			return fmt.Errorf("%w: %s has no column for required field %s", common.ErrNoInsertableColumns, m.Table(), r)
		}
		val, supplied := v[r]
		if val == "" && (wholeRow || supplied) {
			missing = append(missing, string(r))
		}
	}
	if len(missing) > 0 {
		return &common.ValidationError{Table: string(t), Missing: missing}
	}
	return nil
}

// toUser converts a row of t into the logical record. The stored
// classification must be one that t hosts.
func toUser(t models.Table, m columns.ColumnMap, v users.Values) (models.User, error) {
	c, err := classificationOf(t, m, v)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID:             v[m.KeyRole()],
		Email:          v[columns.Email],
		GivenName:      v[columns.GivenName],
		FamilyName:     v[columns.FamilyName],
		PayrollNumber:  v[columns.PayrollNumber],
		BadgeCode:      v[columns.BadgeCode],
		Classification: c,
		ResidesIn:      t,
	}, nil
}

func classificationOf(t models.Table, m columns.ColumnMap, v users.Values) (models.Classification, error) {
	if !m.Has(columns.Classification) {
		if c, ok := t.ImpliedClassification(); ok {
			return c, nil
		}
		return "", fmt.Errorf("%w: %s has no classification column", common.ErrSchemaUnavailable, m.Table())
	}

	c, err := models.ParseClassification(v[columns.Classification])
	if err != nil {
		return "", err
	}
	if routed, _ := models.Route(c); routed != t {
		return "", fmt.Errorf("%w: %s row holds %s", common.ErrInvalidClassification, m.Table(), c)
	}
	return c, nil
}
