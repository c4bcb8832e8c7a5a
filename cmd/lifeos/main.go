package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"lifeos/internal/apiclient"
	"lifeos/internal/auth"
	"lifeos/internal/config"
	"lifeos/internal/guard"
	"lifeos/internal/logger"
	"lifeos/internal/session"
	"lifeos/internal/shell"
)

const usage = `Usage: lifeos [-api URL] [-state PATH] <command> [arguments]

Commands:
  register                 create an account and log in
  login                    log in
  logout                   forget the stored session
  whoami                   show the logged-in user
  setup                    complete your profile
  dashboard                greeting, open tasks and budget
  tasks list|add|done|rm   manage tasks
  finances list|add|rm     manage income and expenses
  log                      quickly log an expense
  resources list|add|status|rm
                           manage your reading list
  planner show|save        weekly planner
  budget show|edit         view or edit your budget
  profile show|passwd|delete
                           manage your account
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// app is one invocation of the client: a page load in the terminal.
type app struct {
	ctx    context.Context
	stdin  io.Reader
	lines  *bufio.Reader
	stdout io.Writer
	stderr io.Writer

	sess   *session.Session
	client *apiclient.Client
	auth   *auth.Service
	shell  *shell.Shell
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	logger.Init(cfg.Env)

	fs := flag.NewFlagSet("lifeos", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	apiURL := fs.String("api", cfg.APIURL, "API base URL")
	statePath := fs.String("state", cfg.StatePath, "Path to the session file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("missing command")
	}

	store, err := session.OpenSQLite(*statePath)
	if err != nil {
		return err
	}
	defer store.Close()

	sess := session.New(store)
	client := apiclient.New(*apiURL, sess, nil)
	authService := auth.NewService(client, sess)

	a := &app{
		ctx:    context.Background(),
		stdin:  stdin,
		lines:  bufio.NewReader(stdin),
		stdout: stdout,
		stderr: stderr,
		sess:   sess,
		client: client,
		auth:   authService,
		shell:  shell.New(authService),
	}
	return a.dispatch(fs.Arg(0), fs.Args()[1:])
}

func (a *app) dispatch(command string, args []string) error {
	switch command {
	case "register":
		return a.register(args)
	case "login":
		return a.login(args)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "setup":
		return a.setup(args)
	case "dashboard":
		return a.dashboard()
	case "tasks":
		return a.tasks(args)
	case "finances":
		return a.finances(args)
	case "log":
		return a.logActivity(args)
	case "resources":
		return a.resources(args)
	case "planner":
		return a.planner(args)
	case "budget":
		return a.budget(args)
	case "profile":
		return a.profile(args)
	case "help":
		fmt.Fprint(a.stdout, usage)
		return nil
	default:
		fmt.Fprint(a.stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// enter restores the session and runs the route guard for route. A redirect
// becomes an error telling the user what to run instead.
func (a *app) enter(route string) error {
	a.shell.Start(a.ctx)
	d := a.shell.Navigate(route)
	if !d.Redirected || d.Route == route {
		return nil
	}
	switch d.Route {
	case guard.RouteAuth:
		return errors.New("not logged in: run `lifeos login` or `lifeos register`")
	case guard.RouteSetup:
		return errors.New("profile incomplete: run `lifeos setup`")
	}
	return nil
}
