package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
)

// App is the interactive TaskKeeper CLI. It drives the HTTP API through an
// api.Client and keeps the current token pair in memory only; nothing is
// persisted between runs.
type App struct {
	config    *config.Config
	api       *api.Client
	userEmail string
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)

	return &App{
		config: c,
		api:    apiClient,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.IsLoggedIn()
}

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return "(" + a.userEmail + ") "
}

func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to TaskKeeper CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		log.Printf("Warning: server not reachable at %s: %s", a.config.ServerEndpointAddr, err.Error())
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
