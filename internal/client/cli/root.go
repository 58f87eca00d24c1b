package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUsage = errors.New("usage")

const usage = `Available commands:
  ping
  login <email>                       password login, prints the access token
  badge <code>                        operator badge login, prints the access token
  list [limit]
  get <id> [staff|operators]
  create key=value...
  update <id> [staff|operators] key=value...
  delete <id> [staff|operators]
Fields: email secret given_name family_name payroll_number badge_code classification
Use secret=- to type the secret without echo.`

func (a *App) execute(ctx context.Context, cmd string, args []string) error {
	var err error
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, usage)
	case "ping":
		err = a.ping(ctx)
	case "login":
		err = a.login(ctx, args)
	case "badge":
		err = a.badge(ctx, args)
	case "list", "l":
		err = a.list(ctx, args)
	case "get":
		err = a.get(ctx, args)
	case "create":
		err = a.create(ctx, args)
	case "update":
		err = a.update(ctx, args)
	case "delete":
		err = a.delete(ctx, args)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintln(a.errOut, usage)
	}
	return err
}

// Root runs the interactive prompt until EOF or "exit".
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to linekeeper admin (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, "lk> ")
		line, err := a.reader.ReadString('\n')
		parts := strings.Fields(line)

		if len(parts) > 0 {
			switch parts[0] {
			case "exit", "quit":
				fmt.Fprintln(a.out, "Bye!")
				return
			default:
				if cerr := a.execute(ctx, parts[0], parts[1:]); cerr != nil {
					fmt.Fprintln(a.errOut, "error:", cerr)
				}
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(a.errOut, "error:", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}
