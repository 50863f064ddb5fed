package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"taskmaster/internal/client"
)

const defaultServer = "http://localhost:5000"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type cliApp struct {
	server    string
	tokenFile string
}

func newRootCmd() *cobra.Command {
	a := &cliApp{}

	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Manage your taskmaster tasks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	server := os.Getenv("TASKMASTER_URL")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&a.server, "server", server, "API base URL (env TASKMASTER_URL)")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", "", "where the session token is stored")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.profileCmd(),
		a.addCmd(),
		a.listCmd(),
		a.showCmd(),
		a.editCmd(),
		a.doneCmd(),
		a.rmCmd(),
	)
	return root
}

func (a *cliApp) tokenStore() (*client.TokenStore, error) {
	path := a.tokenFile
	if path == "" {
		var err error
		if path, err = client.DefaultTokenPath(); err != nil {
			return nil, fmt.Errorf("locate token file: %w", err)
		}
	}
	return client.NewTokenStore(path), nil
}

// anonClient is used by register/login.
func (a *cliApp) anonClient() *client.Client {
	return client.New(a.server)
}

// authedClient loads the saved token; commands fail early when none exists.
func (a *cliApp) authedClient() (*client.Client, error) {
	store, err := a.tokenStore()
	if err != nil {
		return nil, err
	}
	tok, err := store.Load()
	if err != nil {
		if errors.Is(err, client.ErrNoToken) {
			return nil, errors.New("not logged in, run `taskctl login` first")
		}
		return nil, err
	}
	return client.New(a.server, client.WithToken(tok)), nil
}

func (a *cliApp) saveToken(tok string) error {
	store, err := a.tokenStore()
	if err != nil {
		return err
	}
	return store.Save(tok)
}

// promptPassword reads without echo from a terminal, or a plain line when
// stdin is piped.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	defer fmt.Fprintln(cmd.ErrOrStderr())

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := readPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
