package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/integron/console/pkg/catalog"
	"github.com/integron/console/pkg/config"
	"github.com/integron/console/pkg/dashboard"
	"github.com/integron/console/pkg/editor"
	"github.com/integron/console/pkg/gateway"
	"github.com/integron/console/pkg/log"
	"github.com/integron/console/pkg/session"
	"github.com/integron/console/pkg/views"
)

// console wires the session, gateway, caches, and controllers together.
// Everything is an explicit instance; nothing hangs off package globals.
type console struct {
	cfg         config.Config
	session     *session.Manager
	client      *gateway.Client
	catalog     *catalog.Cache
	editor      *editor.Editor
	dash        *dashboard.Dashboard
	workflows   *dashboard.Workflows
	runs        *dashboard.Runs
	credentials *dashboard.Credentials
	templates   *dashboard.Templates
	router      *views.Router
}

func newConsole(cfg config.Config) *console {
	logger := log.WithModule("console")

	store := session.NewFileStore(cfg.StateDir)
	manager := session.NewManager(store, logger)
	client := gateway.NewClient(cfg.BaseURL, manager, logger)
	manager.Attach(client)

	confirm := dashboard.ConfirmFunc(promptConfirm)

	catalogCache := catalog.NewCache(client, logger)
	dash := dashboard.New(client, cfg.RunSample, logger)
	runs := dashboard.NewRuns(client, cfg.RunSample)
	workflows := dashboard.NewWorkflows(client, runs, dash, confirm, cfg.RefreshDelay, logger)
	credentials := dashboard.NewCredentials(client, confirm, logger)
	templates := dashboard.NewTemplates(client)

	router := views.NewRouter()
	router.Register("dashboard", dash.Load)
	router.Register("workflows", workflows.Load)
	router.Register("runs", runs.Load)
	router.Register("credentials", credentials.Load)
	router.Register("templates", templates.Load)

	return &console{
		cfg:         cfg,
		session:     manager,
		client:      client,
		catalog:     catalogCache,
		editor:      editor.New(client, catalogCache, logger),
		dash:        dash,
		workflows:   workflows,
		runs:        runs,
		credentials: credentials,
		templates:   templates,
		router:      router,
	}
}

func (c *console) requireAuth() error {
	if !c.session.Authenticated() {
		return fmt.Errorf("not signed in, run `integron-console login` first")
	}

	return nil
}

func promptConfirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)

	reader := bufio.NewReader(os.Stdin)

	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
