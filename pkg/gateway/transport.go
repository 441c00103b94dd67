package gateway

import (
	"errors"
	"net/http"

	"github.com/byxorna/tinyhouse/pkg/config"
	"github.com/byxorna/tinyhouse/pkg/session"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

// bearerTransport attaches the session token to every request. Requests go
// out bare when there is no session.
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func newTransport(source oauth2.TokenSource, base http.RoundTripper) http.RoundTripper {
	if source == nil {
		return base
	}
	return &bearerTransport{source: source, base: base}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.source.Token()
	if errors.Is(err, session.ErrNoToken) {
		return t.base.RoundTrip(req)
	}
	if err != nil {
		return nil, err
	}
	authed := &oauth2.Transport{Source: oauth2.StaticTokenSource(tok), Base: t.base}
	return authed.RoundTrip(req)
}

func newBreaker(name string, cfg config.Breaker, log logrus.FieldLogger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.MaxRequests,
			Timeout:     cfg.Timeout,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("circuit breaker changed state")
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				var serr *serverError
				return errors.As(err, &serr)
			},
		},
	)
}
