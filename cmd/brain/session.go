package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/secondbrain/brain-client/internal/di/providers"
	"github.com/secondbrain/brain-client/internal/domain"
	"github.com/secondbrain/brain-client/internal/guard"
	"github.com/secondbrain/brain-client/internal/service"
)

var errNotSignedIn = errors.New(`not signed in; run "brain login" first`)

type credentialFlags struct {
	username string
	password string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "Account name")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Password; read from stdin when omitted")
	_ = cmd.MarkFlagRequired("username")
}

// credentials reads a missing password from the first line of stdin.
func (f *credentialFlags) credentials(in io.Reader) (domain.Credentials, error) {
	password := f.password
	if password == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return domain.Credentials{}, fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	return domain.Credentials{Username: f.username, Password: password}, nil
}

func (a *app) newSignupCmd() *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := creds.credentials(cmd.InOrStdin())
			if err != nil {
				return err
			}
			msg, err := do.MustInvoke[*service.AuthService](a.injector).Signup(cmd.Context(), c)
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "Account created"
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		}),
	}
	creds.bind(cmd)
	return cmd
}

func (a *app) newLoginCmd() *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := creds.credentials(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if _, err := do.MustInvoke[*service.AuthService](a.injector).Signin(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", strings.TrimSpace(c.Username))
			return nil
		}),
	}
	creds.bind(cmd)
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: a.run(func(_ *cobra.Command, _ []string) error {
			do.MustInvoke[*service.AuthService](a.injector).Logout()
			return nil
		}),
	}
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if a.signedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "Signed in")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			}
			return nil
		}),
	}
}

// signedIn applies the same check the web UI guards its pages with.
func (a *app) signedIn() bool {
	tokens := do.MustInvoke[*providers.AuthStoreHandle](a.injector)
	return guard.Allowed(tokens.Store)
}

func (a *app) requireSession() error {
	if !a.signedIn() {
		return errNotSignedIn
	}
	return nil
}
