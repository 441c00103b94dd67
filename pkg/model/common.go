package model

import (
	"context"
	"time"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/payment"
	"github.com/byxorna/tinyhouse/pkg/session"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Common stuff we'll need to access in all models.
type commonModel struct {
	ctx     context.Context
	gateway gateway.Executor
	session *session.Session
	payment payment.Widget
	open    func(url string) error
	// Stripe platform the viewer connects a wallet to
	stripeClientID string
	log            logrus.FieldLogger
	now            func() time.Time
	spinner        *spinner.Model

	// one-time login codes already sent for exchange this process
	exchanged map[string]struct{}
	// one-time Stripe codes already sent to connect a wallet
	connected map[string]struct{}

	width  int
	height int
}

func (c *commonModel) viewer() v1.Viewer {
	return c.session.Viewer()
}

func (c *commonModel) spin() string {
	if c.spinner == nil {
		return ""
	}
	return c.spinner.View()
}

// resetCache drops cached query results when the viewer changes identity
func (c *commonModel) resetCache() {
	if r, ok := c.gateway.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func (c *commonModel) openBrowser(u string) tea.Cmd {
	open := c.open
	return func() tea.Msg {
		if open == nil {
			return browserOpenedMsg{url: u}
		}
		return browserOpenedMsg{url: u, err: open(u)}
	}
}

// requestContext bounds a single gateway call to the life of the program
func (c *commonModel) requestContext() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}
