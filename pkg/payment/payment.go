package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

var (
	ErrNotReady = errors.New("payment widget is not ready")
	ErrNoToken  = errors.New("payment widget returned no token")
)

// Card is what the user typed into the card fields. It is handed straight to
// the payment processor and never leaves this package in any other form.
type Card struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// Widget turns card input into a single use payment token
type Widget interface {
	Ready() bool
	Tokenize(ctx context.Context, card Card) (string, error)
}

// ServiceError is a failure reported by the payment processor, such as a
// declined or malformed card. Message is safe to show to the user.
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Stripe tokenizes cards with a publishable key
type Stripe struct {
	api *client.API
	log logrus.FieldLogger
}

func NewStripe(publishableKey string, log logrus.FieldLogger) *Stripe {
	s := Stripe{log: log}
	if publishableKey != "" {
		s.api = &client.API{}
		s.api.Init(publishableKey, nil)
	}
	return &s
}

func (s *Stripe) Ready() bool {
	return s != nil && s.api != nil
}

func (s *Stripe) Tokenize(ctx context.Context, card Card) (string, error) {
	if !s.Ready() {
		return "", &ServiceError{Err: ErrNotReady}
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(strings.ReplaceAll(card.Number, " ", "")),
			ExpMonth: stripe.String(card.ExpMonth),
			ExpYear:  stripe.String(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
	}
	params.Context = ctx

	tok, err := s.api.Tokens.New(params)
	if err != nil {
		serr := ServiceError{Err: fmt.Errorf("unable to tokenize card: %w", err)}
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			serr.Message = stripeErr.Msg
		}
		s.log.WithError(err).Warn("card tokenization failed")
		return "", &serr
	}
	if tok == nil || tok.ID == "" {
		return "", &ServiceError{Err: ErrNoToken}
	}
	return tok.ID, nil
}
