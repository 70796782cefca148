package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"museo/internal/authview"
	"museo/internal/services/auth"
	"museo/internal/textutil"
)

type authFlags struct {
	username string
	email    string
	password string
}

func (f authFlags) value(name authview.Field) string {
	switch name {
	case authview.FieldUsername:
		return f.username
	case authview.FieldEmail:
		return f.email
	case authview.FieldPassword:
		return f.password
	default:
		return ""
	}
}

func newAuthCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newAuthViewCommand(ctx, authview.ModeLogin, "login", "Sign in and store an access token"),
		newAuthViewCommand(ctx, authview.ModeRegister, "register", "Create an account"),
		newAuthViewCommand(ctx, authview.ModeRecover, "recover", "Request account recovery instructions"),
		newLogoutCommand(ctx),
		newWhoamiCommand(ctx),
	}
}

func newAuthViewCommand(ctx *commandContext, mode authview.Mode, use, short string) *cobra.Command {
	var flags authFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.backendClient(cmd)
			if err != nil {
				return err
			}
			session, err := ctx.session()
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			view := authview.New(auth.NewClient(client), session,
				authview.WithLogger(logger),
				authview.WithOnLogin(func() { fmt.Fprintln(out, "Signed in.") }),
			)
			if err := view.SwitchMode(mode); err != nil {
				return err
			}

			heading := view.Copy()
			fmt.Fprintln(out, heading.Title)
			fmt.Fprintln(out, heading.Subtitle)
			fmt.Fprintln(out, renderModeLinks(view.Mode().Links()))

			prompt := newPrompter(cmd)
			for _, spec := range view.Fields() {
				value := flags.value(spec.Name)
				if value == "" {
					value, err = prompt.ask(spec)
					if err != nil {
						return err
					}
				}
				if err := view.SetField(spec.Name, value); err != nil {
					return err
				}
			}

			outcome, err := view.Submit(cmd.Context())
			if err != nil {
				return err
			}
			switch mode {
			case authview.ModeLogin:
				if !outcome.TokenStored {
					fmt.Fprintln(out, "The backend returned no access token; nothing was stored.")
				}
			case authview.ModeRegister:
				fmt.Fprintln(out, "Account created. Sign in with `museo login`.")
			case authview.ModeRecover:
				fmt.Fprintln(out, "If the address is registered, recovery instructions are on their way.")
			}
			return nil
		},
	}

	for _, spec := range mode.Fields() {
		switch spec.Name {
		case authview.FieldUsername:
			cmd.Flags().StringVar(&flags.username, "username", "", "Artist name")
		case authview.FieldEmail:
			cmd.Flags().StringVar(&flags.email, "email", "", "Email address")
		case authview.FieldPassword:
			cmd.Flags().StringVar(&flags.password, "password", "", "Password (prompted without echo when omitted)")
		}
	}
	return cmd
}

// renderModeLinks points at the sibling commands for each mode switch.
func renderModeLinks(links []authview.Link) string {
	parts := make([]string, 0, len(links))
	for _, link := range links {
		parts = append(parts, fmt.Sprintf("%s: museo %s", link.Label, link.Target))
	}
	return strings.Join(parts, "  |  ")
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.session()
			if err != nil {
				return err
			}
			if err := session.Clear(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Signed out.")
			if _, source, _ := session.Token(cmd.Context()); source == auth.SourceEnvironment {
				fmt.Fprintln(out, "MUSEO_TOKEN is still set and will continue to be used.")
			}
			return nil
		},
	}
}

type whoamiView struct {
	SignedIn  bool   `json:"signed_in"`
	Source    string `json:"source,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Email     string `json:"email,omitempty"`
	IssuedAt  string `json:"issued_at,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Expired   bool   `json:"expired,omitempty"`
}

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored access token's identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.session()
			if err != nil {
				return err
			}
			token, source, err := session.Token(cmd.Context())
			if err != nil {
				return err
			}

			view := whoamiView{SignedIn: token != "", Source: string(source)}
			if info, err := auth.InspectToken(token); err == nil {
				view.Subject = info.Subject
				view.Email = info.Email
				view.IssuedAt = formatTime(info.IssuedAt)
				view.ExpiresAt = formatTime(info.ExpiresAt)
				view.Expired = info.Expired(time.Now())
			}

			if jsonOut {
				return writeJSON(cmd, view)
			}
			out := cmd.OutOrStdout()
			if !view.SignedIn {
				fmt.Fprintln(out, "Not signed in.")
				return nil
			}
			fmt.Fprintln(out, renderDetails([][2]string{
				{"Source", view.Source},
				{"Subject", view.Subject},
				{"Email", view.Email},
				{"Issued", view.IssuedAt},
				{"Expires", view.ExpiresAt},
				{"Expired", yesNoIf(view.ExpiresAt != "", view.Expired)},
			}))
			if view.Subject == "" && view.Email == "" {
				fmt.Fprintln(out, "Token is opaque; identity is only known to the backend.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func yesNoIf(show, value bool) string {
	if !show {
		return ""
	}
	return textutil.Ternary(value, "yes", "no")
}
