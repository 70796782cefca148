package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"museo/internal/authview"
	"museo/internal/services"
	"museo/internal/services/backend"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if hint := errorHint(err); hint != "" {
				fmt.Fprintln(os.Stderr, hint)
			}
		}
		os.Exit(1)
	}
}

// errorHint returns follow-up lines printed under a failed command: the
// backend's own message for HTTP errors, then what to try next. Auth view
// alerts stay generic.
func errorHint(err error) string {
	var alert *authview.Alert
	if errors.As(err, &alert) {
		return ""
	}
	var lines []string
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		if msg := statusErr.Message(); msg != "" {
			lines = append(lines, "Backend says: "+msg)
		}
	}
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		lines = append(lines, "Sign in with `museo login` or export MUSEO_TOKEN.")
	case errors.Is(err, services.ErrTransport):
		lines = append(lines, "Check that the backend is reachable (api.base_url or --api-url).")
	}
	return strings.Join(lines, "\n")
}
