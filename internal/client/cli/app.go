package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/linekeeper/internal/client/client"
	"github.com/dmitrijs2005/linekeeper/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewUserAdminClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	apiClient.SetAccessToken(c.AccessToken)

	return newApp(c, apiClient, os.Stdin, os.Stdout, os.Stderr), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out, errOut io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out, errOut: errOut}
}

// Run executes args as a single command, or starts the prompt when args
// is empty.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.client.Close()

	if len(args) == 0 {
		a.Root(ctx)
		return nil
	}
	return a.execute(ctx, args[0], args[1:])
}

// call bounds a single request by the configured timeout.
func (a *App) call(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.Timeout)
}
