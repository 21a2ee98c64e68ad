package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return writeErr(cmd, errors.New("--username is required"))
			}
			if password == "" {
				// Read the password from stdin so it stays out of shell history.
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return writeErr(cmd, err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			token, err := client(app).Login(cmd.Context(), username, password)
			if err != nil {
				return writeErr(cmd, err)
			}

			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			if err := st.SetToken(token); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"loggedIn": true})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and drop the persisted session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The server call is best effort; the local session is cleared
			// regardless so a dead backend cannot keep us "logged in".
			_ = client(app).Logout(cmd.Context())

			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			if err := st.ClearToken(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"loggedIn": false})
		},
	}
}
