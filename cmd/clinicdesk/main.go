package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onehealth/clinicdesk/internal/cli"
	"github.com/onehealth/clinicdesk/internal/config"
	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
)

// errFailed marks a command whose outcome was already printed.
var errFailed = errors.New("command failed")

// app is what every command needs. It is built once, before the command
// runs.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	api      apiclient.API
	printer  *cli.Printer
	prompter cli.Prompter
	sess     auth.Session
	user     auth.User
}

func main() {
	a := &app{}
	var (
		output  string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:           "clinicdesk",
		Short:         "Clinic front-desk console and API gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(output, verbose)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", cli.FormatTable, "output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(pincodeCmd(a))
	rootCmd.AddCommand(registerCmd(a))
	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(visitsCmd(a))
	rootCmd.AddCommand(rolesCmd(a))
	rootCmd.AddCommand(clinicsCmd(a))
	rootCmd.AddCommand(whoamiCmd(a))

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) init(output string, verbose bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cfg, verbose)

	a.printer, err = cli.NewPrinter(os.Stdout, output)
	if err != nil {
		return err
	}
	a.prompter = cli.NewSurveyPrompter()
	a.api = apiclient.New(cfg.APIBaseURL, cfg.HTTPTimeout, a.logger)

	sess, user, info, err := auth.ParseToken(cfg.AccessToken, []byte(cfg.AuthSigningKey), time.Now())
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
	case err != nil:
		a.logger.Warn().Err(err).Msg("ignoring unreadable ACCESS_TOKEN")
	case !info.Valid:
		a.logger.Warn().Msg("ACCESS_TOKEN has expired")
	default:
		a.sess, a.user = sess, user
	}
	return nil
}

// newLogger writes to stderr since stdout carries command output. serve
// builds its own stdout logger.
func newLogger(cfg *config.Config, verbose bool) zerolog.Logger {
	out := os.Stderr
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// requireSession is for read commands, which have no login message of
// their own.
func (a *app) requireSession() error {
	if !a.sess.Authenticated() {
		return errors.New("not signed in: set ACCESS_TOKEN to a valid access token")
	}
	return nil
}

func (a *app) clinicID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if a.user.ClinicID == "" {
		return "", errors.New("no clinic ID available: pass --clinic")
	}
	return a.user.ClinicID, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
