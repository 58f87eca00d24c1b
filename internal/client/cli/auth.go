package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linekeeper/internal/shared"
)

func (a *App) ping(ctx context.Context) error {
	ctx, cancel := a.call(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: login <email>", errUsage)
	}

	secret, err := GetPassword(a.errOut, "Enter secret")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(secret)

	ctx, cancel := a.call(ctx)
	defer cancel()

	token, err := a.client.Login(ctx, args[0], string(secret))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) badge(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: badge <code>", errUsage)
	}

	ctx, cancel := a.call(ctx)
	defer cancel()

	token, err := a.client.LoginBadge(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}
