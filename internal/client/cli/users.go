package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/linekeeper/internal/client/client"
	pb "github.com/dmitrijs2005/linekeeper/internal/proto"
	"github.com/dmitrijs2005/linekeeper/internal/shared"
)

var tables = map[string]struct{}{"staff": {}, "operators": {}}

// locate splits "<id> [table]" off the front of args.
func locate(args []string) (id, table string, rest []string, err error) {
	if len(args) == 0 || args[0] == "" {
		return "", "", nil, fmt.Errorf("%w: missing id", errUsage)
	}
	id, rest = args[0], args[1:]
	if len(rest) > 0 {
		if _, ok := tables[rest[0]]; ok {
			table, rest = rest[0], rest[1:]
		}
	}
	return id, table, rest, nil
}

func (a *App) list(ctx context.Context, args []string) error {
	limit := 0
	if len(args) > 1 {
		return fmt.Errorf("%w: list [limit]", errUsage)
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("%w: limit must be a non-negative number", errUsage)
		}
		limit = n
	}

	ctx, cancel := a.call(ctx)
	defer cancel()

	users, err := a.client.ListUsers(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tID\tKIND\tEMAIL\tPAYROLL\tBADGE\tNAME")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			u.Table, u.ID, u.Kind, u.Email, u.PayrollNumber, u.BadgeCode, fullName(u))
	}
	return w.Flush()
}

func (a *App) get(ctx context.Context, args []string) error {
	id, table, rest, err := locate(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: get <id> [staff|operators]", errUsage)
	}

	ctx, cancel := a.call(ctx)
	defer cancel()

	u, err := a.client.GetUser(ctx, id, table)
	if err != nil {
		return err
	}
	a.show(u)
	return nil
}

func (a *App) create(ctx context.Context, args []string) error {
	fields, err := a.fields(args)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: create key=value...", errUsage)
	}

	ctx, cancel := a.call(ctx)
	defer cancel()

	ref, err := a.client.CreateUser(ctx, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s %s\n", ref.Table, ref.ID)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	id, table, rest, err := locate(args)
	if err != nil {
		return err
	}
	fields, err := a.fields(rest)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: update <id> [staff|operators] key=value...", errUsage)
	}

	ctx, cancel := a.call(ctx)
	defer cancel()

	ref, err := a.client.UpdateUser(ctx, id, table, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated %s %s\n", ref.Table, ref.ID)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, table, rest, err := locate(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: delete <id> [staff|operators]", errUsage)
	}

	ctx, cancel := a.call(ctx)
	defer cancel()

	if err := a.client.DeleteUser(ctx, id, table); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "deleted", id)
	return nil
}

// fields parses assignments and reads any value spelled "-" from the
// terminal.
func (a *App) fields(words []string) (client.Fields, error) {
	fields, err := parseAssignments(words)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	for k, v := range fields {
		if v != promptValue {
			continue
		}
		b, err := GetPassword(a.errOut, "Enter "+k)
		if err != nil {
			return nil, err
		}
		fields[k] = string(b)
		shared.WipeByteArray(b)
	}
	return fields, nil
}

func (a *App) show(u client.User) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(w, "%s:\t%s\n", k, v)
		}
	}
	row(pb.KeyTable, u.Table)
	row(pb.KeyID, u.ID)
	row(pb.KeyKind, u.Kind)
	row(pb.KeyEmail, u.Email)
	row(pb.KeyPayrollNumber, u.PayrollNumber)
	row(pb.KeyBadgeCode, u.BadgeCode)
	row(pb.KeyGivenName, u.GivenName)
	row(pb.KeyFamilyName, u.FamilyName)
	_ = w.Flush()
}

func fullName(u client.User) string {
	switch {
	case u.GivenName == "":
		return u.FamilyName
	case u.FamilyName == "":
		return u.GivenName
	}
	return u.GivenName + " " + u.FamilyName
}
