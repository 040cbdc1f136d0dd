package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"garage_admin/internal/client"

	"github.com/sirupsen/logrus"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2

	tokenFileName = "token"
)

var (
	ErrDeleteDeclined = errors.New("delete declined")
	errUsage          = errors.New("usage")
)

type app struct {
	api       *client.Client
	in        *bufio.Reader
	out       io.Writer
	errOut    io.Writer
	tokenPath string
	log       *logrus.Entry
}

func newApp(baseURL string, in io.Reader, out, errOut io.Writer) (*app, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return newAppWithTokenPath(baseURL, filepath.Join(dir, "garagectl", tokenFileName), in, out, errOut), nil
}

func newAppWithTokenPath(baseURL, tokenPath string, in io.Reader, out, errOut io.Writer) *app {
	a := &app{
		api:       client.New(baseURL),
		in:        bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		tokenPath: tokenPath,
		log:       logrus.WithField("component", "garagectl"),
	}
	if tok, err := os.ReadFile(tokenPath); err == nil {
		a.api.SetToken(strings.TrimSpace(string(tok)))
	}
	return a
}

type command struct {
	action string
	usage  string
	run    func(ctx context.Context, args []string) error
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"login":   {"Login", "login -email e [-password p]", a.login},
		"logout":  {"Logout", "logout", a.logout},
		"me":      {"Session check", "me", a.me},
		"list":    {"Load", "list <resource> [-q term] [-xlsx file]", a.list},
		"get":     {"Load", "get <resource> <id>", a.get},
		"create":  {"Save", "create <resource> [-f file.json|-] [-set name=value ...]", a.create},
		"edit":    {"Save", "edit <resource> <id> [-f file.json|-] [-set name=value ...]", a.edit},
		"delete":  {"Delete", "delete <resource> <id> [-y]", a.delete},
		"invoice": {"Save", "invoice create|edit ...", a.invoice},
		"settle":  {"Payment", "settle <invoice-id> -method cash|card|bank|upi [-key k] [-payload json|@file]", a.settle},
		"summary": {"Load", "summary", a.summary},
		"ping":    {"Ping", "ping", a.ping},
	}
}

func (a *app) run(ctx context.Context, args []string) int {
	cmds := a.commands()
	if len(args) == 0 {
		a.usage(cmds)
		return exitUsage
	}
	cmd, ok := cmds[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "unknown command %q\n", args[0])
		a.usage(cmds)
		return exitUsage
	}

	err := cmd.run(ctx, args[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(a.errOut, "usage: garagectl %s\n", cmd.usage)
		return exitUsage
	case errors.Is(err, ErrDeleteDeclined):
		fmt.Fprintln(a.errOut, "Delete cancelled")
		return exitFailure
	default:
		a.log.WithError(err).WithField("command", args[0]).Debug("[garagectl] command failed")
		fmt.Fprintln(a.errOut, failureLine(cmd.action, err))
		return exitFailure
	}
}

// failureLine is the single line shown for a failed action.
func failureLine(action string, err error) string {
	var apiErr *client.APIError
	isAPI := errors.As(err, &apiErr) && apiErr.Message != ""
	switch {
	case isAPI && action != "Login" && client.IsStatus(err, http.StatusUnauthorized):
		return fmt.Sprintf("%s failed: %s (run garagectl login)", action, apiErr.Message)
	case isAPI:
		return fmt.Sprintf("%s failed: %s", action, apiErr.Message)
	case errors.Is(err, client.ErrValidation):
		return fmt.Sprintf("%s failed: %s", action, strings.TrimPrefix(err.Error(), client.ErrValidation.Error()+": "))
	default:
		return action + " failed"
	}
}

func (a *app) usage(cmds map[string]command) {
	fmt.Fprintln(a.errOut, "usage: garagectl <command> [args]")
	for _, name := range []string{"login", "logout", "me", "ping", "list", "get", "create", "edit", "delete", "invoice", "settle", "summary"} {
		fmt.Fprintf(a.errOut, "  %s\n", cmds[name].usage)
	}
	fmt.Fprintf(a.errOut, "resources: %s\n", strings.Join(resourceNames, ", "))
}

func (a *app) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(a.tokenPath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(a.tokenPath, []byte(token+"\n"), 0o600)
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (a *app) confirm(question string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", question)
	line, _ := a.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *app) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}
