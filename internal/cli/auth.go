package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/session"
)

func newLoginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.closeLog()

			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				fmt.Fprint(out, "Email: ")
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}

			fmt.Fprint(out, "Password: ")
			password, err := readPassword(cmd.InOrStdin(), reader)
			fmt.Fprintln(out)
			if err != nil {
				return err
			}

			client := api.NewClient(e.cfg.APIURL,
				api.WithTimeout(e.cfg.HTTPTimeout),
				api.WithLogger(e.logger.With("component", "api")))
			ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.HTTPTimeout)
			defer cancel()

			user, err := client.Login(ctx, email, password)
			if err != nil {
				return errors.New(api.UserMessage(err))
			}
			if err := e.sessions.Save(user); err != nil {
				return err
			}

			e.logger.Info("signed in", "email", user.Email, "role", user.Role)
			fmt.Fprintf(out, "✓ Logged in as %s (%s)\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

// readPassword reads without echo from a terminal, or a plain line otherwise.
func readPassword(in io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := buffered.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.closeLog()

			if err := e.sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.closeLog()

			user, err := e.sessions.Load()
			switch {
			case errors.Is(err, session.ErrNoSession):
				return errors.New("not logged in, run `outreach login`")
			case err != nil:
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
			fmt.Fprintf(out, "Role:    %s\n", user.Role)
			gmail := "not connected"
			if user.GmailConnected {
				gmail = "connected"
			}
			fmt.Fprintf(out, "Gmail:   %s\n", gmail)
			if !user.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Expires: %s\n", humanize.Time(user.ExpiresAt))
			}
			return nil
		},
	}
}
