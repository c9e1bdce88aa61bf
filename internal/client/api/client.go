package api

import (
	"context"

	"github.com/dmitrijs2005/gksession/internal/client/models"
)

// Client is what the session effects need from the server.
type Client interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	ValidateToken(ctx context.Context) error
	// SetToken replaces the credential sent with later requests.
	// An empty token stops sending the Authorization header.
	SetToken(token string)
	Token() string
}
