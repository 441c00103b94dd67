package payment

import (
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/oauth"
)

// ConnectURL is the Stripe consent page for linking an account to the
// platform named by clientID. Stripe answers with a one-time code.
func ConnectURL(clientID string) string {
	return oauth.AuthorizeURL(&stripe.AuthorizeURLParams{
		ClientID:     stripe.String(clientID),
		ResponseType: stripe.String("code"),
		Scope:        stripe.String(string(stripe.OAuthScopeTypeReadWrite)),
	})
}
