// Package commands implements the taskboard command line client.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"taskboard/app/client"
	"taskboard/app/config"
	"taskboard/app/logging"
	"taskboard/app/routes"
	"taskboard/app/server"
	"taskboard/app/state"
	"taskboard/app/store"

	"github.com/urfave/cli"
)

// ErrQuiet is returned when the failure was already reported through the log.
var ErrQuiet = errors.New("taskboard: failed")

var errNotLoggedIn = errors.New("not logged in; run `taskboard login` first")

// env is the client wiring shared by the commands of one invocation.
type env struct {
	cfg   config.Config
	log   *logging.Logger
	kv    store.KV
	auth  *state.Auth
	tasks *state.Tasks
}

type shell struct {
	out    io.Writer
	errOut io.Writer
	env    *env
}

// NewApp builds the taskboard CLI writing results to out and logs to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	sh := &shell{out: out, errOut: errOut}

	app := cli.NewApp()
	app.Name = "taskboard"
	app.Usage = "manage your tasks against the taskboard backend"
	app.Version = "0.1.0"
	app.Writer = out
	app.ErrWriter = errOut
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "api-url", Usage: "backend base URL; empty serves requests in-process"},
		cli.StringFlag{Name: "store", Usage: "record store: file, memory, mysql, postgres or neo4j"},
		cli.StringFlag{Name: "data-dir", Usage: "directory of the file store"},
		cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file to load"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "run the backend as an HTTP server",
			Flags:  []cli.Flag{cli.StringFlag{Name: "addr", Usage: "listen address"}},
			Action: sh.serve,
		},
		{
			Name:  "register",
			Usage: "create an account and log in",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "username, u"},
				cli.StringFlag{Name: "email, e"},
				cli.StringFlag{Name: "password, p"},
			},
			Action: sh.register,
		},
		{
			Name:  "login",
			Usage: "log in with an existing account",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "username, u"},
				cli.StringFlag{Name: "password, p"},
			},
			Action: sh.login,
		},
		{
			Name:   "logout",
			Usage:  "forget the current session",
			Action: sh.logout,
		},
		{
			Name:   "whoami",
			Usage:  "print the current session",
			Action: sh.whoami,
		},
		{
			Name:        "tasks",
			Usage:       "work with the tasks of the logged in user",
			Subcommands: taskCommands(sh),
		},
	}
	app.After = func(c *cli.Context) error {
		return sh.close()
	}
	return app
}

// loadConfig applies global flags over the environment.
func (sh *shell) loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Read(c.GlobalString("env-file"))
	if err != nil {
		return cfg, err
	}
	if v := c.GlobalString("store"); v != "" {
		cfg.Store = v
	}
	if v := c.GlobalString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v := c.GlobalString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v := c.GlobalString("log-level"); v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}
	return cfg, cfg.Validate()
}

// setup opens the store and builds the state machines on first use.
func (sh *shell) setup(c *cli.Context) (*env, error) {
	if sh.env != nil {
		return sh.env, nil
	}
	cfg, err := sh.loadConfig(c)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	log := logging.New(sh.errOut, cfg.LogLevel)

	kv, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}

	var api *client.Client
	if cfg.APIURL != "" {
		api = client.New(cfg.APIURL, nil)
	} else {
		router, err := routes.NewBackend(ctx, kv, log)
		if err != nil {
			kv.Close()
			return nil, err
		}
		api = client.NewInProcess(router)
	}

	auth, err := state.NewAuth(ctx, api, store.NewSessions(kv), log)
	if err != nil {
		kv.Close()
		return nil, err
	}
	sh.env = &env{
		cfg:   cfg,
		log:   log,
		kv:    kv,
		auth:  auth,
		tasks: state.NewTasks(api, log),
	}
	return sh.env, nil
}

func (sh *shell) close() error {
	if sh.env == nil {
		return nil
	}
	err := sh.env.kv.Close()
	sh.env = nil
	return err
}

func (sh *shell) serve(c *cli.Context) error {
	cfg, err := sh.loadConfig(c)
	if err != nil {
		return err
	}
	if v := c.String("addr"); v != "" {
		cfg.Addr = v
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg, logging.New(sh.errOut, cfg.LogLevel))
}

func required(c *cli.Context, names ...string) error {
	for _, n := range names {
		if c.String(n) == "" {
			return fmt.Errorf("--%s is required", n)
		}
	}
	return nil
}

func (sh *shell) register(c *cli.Context) error {
	if err := required(c, "username", "email", "password"); err != nil {
		return err
	}
	e, err := sh.setup(c)
	if err != nil {
		return err
	}
	if err := e.auth.Register(context.Background(), c.String("username"), c.String("email"), c.String("password")); err != nil {
		return errors.New(e.auth.State().Error)
	}
	fmt.Fprintf(sh.out, "Registered and logged in as %s\n", e.auth.State().Username)
	return nil
}

func (sh *shell) login(c *cli.Context) error {
	if err := required(c, "username", "password"); err != nil {
		return err
	}
	e, err := sh.setup(c)
	if err != nil {
		return err
	}
	if err := e.auth.Login(context.Background(), c.String("username"), c.String("password")); err != nil {
		return errors.New(e.auth.State().Error)
	}
	fmt.Fprintf(sh.out, "Logged in as %s\n", e.auth.State().Username)
	return nil
}

func (sh *shell) logout(c *cli.Context) error {
	e, err := sh.setup(c)
	if err != nil {
		return err
	}
	if err := e.auth.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Logged out")
	return nil
}

func (sh *shell) whoami(c *cli.Context) error {
	e, err := sh.setup(c)
	if err != nil {
		return err
	}
	st := e.auth.State()
	if st.Status != state.Authenticated {
		fmt.Fprintln(sh.out, "Not logged in")
		return nil
	}
	fmt.Fprintln(sh.out, st.Username)
	return nil
}

// currentUser returns the session user or an error telling the user to log in.
func (sh *shell) currentUser(c *cli.Context) (*env, string, error) {
	e, err := sh.setup(c)
	if err != nil {
		return nil, "", err
	}
	st := e.auth.State()
	if st.Status != state.Authenticated || st.Username == "" {
		return nil, "", errNotLoggedIn
	}
	return e, st.Username, nil
}
