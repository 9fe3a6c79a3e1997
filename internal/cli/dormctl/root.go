package dormctl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dorm-delivery/pkg/client"
	"dorm-delivery/pkg/logger"
	"github.com/spf13/cobra"
)

const (
	defaultAPIURL = "http://127.0.0.1:8080"
	envAPIURL     = "DORMCTL_API_URL"
	envTokenFile  = "DORMCTL_TOKEN_FILE"
)

// LoggerFactory строит логгер после разбора флагов, когда известен --verbose.
type LoggerFactory func(verbose bool) (logger.Logger, error)

type app struct {
	apiURL    string
	tokenFile string
	verbose   bool

	newLogger LoggerFactory
	log       logger.Logger
	client    *client.Client
}

func NewRootCommand(newLogger LoggerFactory) *cobra.Command {
	a := &app{newLogger: newLogger}

	root := &cobra.Command{
		Use:           "dormctl",
		Short:         "Command line client for Dorm Delivery",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr(envAPIURL, defaultAPIURL), "API base URL ($"+envAPIURL+")")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", os.Getenv(envTokenFile), "session file, ~/.dormctl/token.json by default ($"+envTokenFile+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log request failures in detail")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.navCommand(),
		a.deliveriesCommand(),
		a.tasksCommand(),
		a.adminCommand(),
	)
	return root
}

func (a *app) setup() error {
	log, err := a.newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log.With(logger.NewField("api", a.apiURL))

	if a.tokenFile == "" {
		path, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		a.tokenFile = path
	}

	a.client = client.New(a.apiURL, client.NewTokenStore(a.tokenFile))
	return nil
}

// guard - проверка роли перед "страницей". Роль читается из сохраненного токена.
func (a *app) guard(required client.Role) error {
	sess, _ := a.client.Session()
	if err := client.Guard(sess.Role, required); err != nil {
		return fmt.Errorf("%w: this page is for %s users", err, required)
	}
	return nil
}

// failed печатает одну строку для пользователя, подробности уходят в лог.
func (a *app) failed(op, message string, err error) error {
	a.log.With(logger.NewField("error", err)).Error(op)

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", message, apiErr.Detail)
	}
	return errors.New(message)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func writeln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func writef(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...)
}
