package run

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"
)

type RunResult struct {
	Authenticated bool
}

// Run authenticates once and then hands control to the menu. A failed authentication
// ends the session without showing the menu; it is not reported as an error.
func Run(ctx context.Context, session *Session, in io.Reader, out io.Writer) (RunResult, error) {
	cfg := session.Config
	if cfg.Deribit.ClientID == "" || cfg.Deribit.ClientSecret == "" {
		log.Warn("DERIBIT_CLIENT_ID or DERIBIT_CLIENT_SECRET is not set")
	}

	token, err := session.Client.Authenticate(ctx, cfg.Deribit.ClientID, cfg.Deribit.ClientSecret)
	if err != nil {
		log.WithContext(ctx).Errorf("%v", err)
		log.Error("Authentication failed. Exiting program.")
		return RunResult{Authenticated: false}, nil
	}

	if !token.Expiry.IsZero() {
		log.Infof("Authenticated, access token expires at %s", token.Expiry.Format("2006-01-02 15:04:05"))
	}

	menu := NewMenu(in, out, session.Client, token, cfg.Instruments.Currency, cfg.Instruments.Kind)
	menu.Run(ctx)

	return RunResult{Authenticated: true}, nil
}
