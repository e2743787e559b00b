package eventservices

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/jiaming2012/deribit-trading/src/eventmodels"
)

// Authenticate exchanges client credentials for an access token. A result without
// access_token is a failure even though the call itself succeeded. The token is never
// refreshed.
func (c *DeribitClient) Authenticate(ctx context.Context, clientID, clientSecret string) (*oauth2.Token, error) {
	params := map[string]interface{}{
		"grant_type":    "client_credentials",
		"client_id":     clientID,
		"client_secret": clientSecret,
	}

	dto, err := callDeribit[eventmodels.DeribitAuthResultDTO](ctx, c, eventmodels.DeribitAuthMethod, eventmodels.DeribitAuthRequestID, params, nil)
	if err != nil {
		return nil, fmt.Errorf("Authenticate: failed to fetch access token: %w", err)
	}

	if dto.AccessToken == nil || *dto.AccessToken == "" {
		return nil, fmt.Errorf("Authenticate: %w in auth result", eventmodels.MissingAccessTokenErr)
	}

	token := &oauth2.Token{
		AccessToken:  *dto.AccessToken,
		TokenType:    dto.TokenType,
		RefreshToken: dto.RefreshToken,
	}

	if dto.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(dto.ExpiresIn) * time.Second)
	}

	log.WithFields(log.Fields{
		"scope":  dto.Scope,
		"expiry": token.Expiry,
	}).Debug("Authenticate: access token obtained")

	return token, nil
}
