package model

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/byxorna/tinyhouse/pkg/config"
	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/payment"
	"github.com/byxorna/tinyhouse/pkg/route"
	"github.com/byxorna/tinyhouse/pkg/runtime"
	"github.com/byxorna/tinyhouse/pkg/session"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
)

const (
	logFileName = "tinyhouse.log"
)

// NewFromConfigFile loads the configuration at path and wires the
// application to the API it names, starting at start
func NewFromConfigFile(ctx context.Context, path string, start route.Route) (*Model, error) {
	cfg, err := config.NewFromFile(path)
	if err != nil {
		return nil, err
	}

	log, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	store, err := session.NewDefaultStore()
	if err != nil {
		return nil, fmt.Errorf("error initializing session store: %w", err)
	}
	sess := session.New(store, log)

	updates := make(chan v1.Viewer, 1)
	sess.Subscribe(func(v v1.Viewer) {
		select {
		case updates <- v:
		default:
		}
	})
	go func() {
		if err := sess.Watch(ctx); err != nil {
			log.WithError(err).Warn("session watch stopped")
		}
	}()

	log.WithFields(logrus.Fields{
		"endpoint": cfg.Endpoint,
		"route":    start.String(),
	}).Info("starting tinyhouse")

	return New(ctx, Options{
		Gateway:        gateway.New(cfg, store, log),
		Session:        sess,
		Payment:        payment.NewStripe(cfg.StripePublishableKey, log),
		Open:           browserOpener(cfg.Browser),
		StripeClientID: cfg.StripeClientID,
		Log:            log,
		ViewerUpdates:  updates,
		Start:          start,
	}), nil
}

// NewLogger logs to cfg.LogFile, or to a file in the XDG cache directory.
// The terminal belongs to the UI so nothing is logged there.
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	path := cfg.LogFile
	if path == "" {
		path, err = runtime.CacheFile(logFileName)
		if err != nil {
			return nil, fmt.Errorf("unable to determine log file: %w", err)
		}
	} else if path, err = homedir.Expand(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file %s: %w", path, err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return log, nil
}

func browserOpener(browser string) func(string) error {
	return func(url string) error {
		cmd := exec.Command(browser, url)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("unable to open %s with %s: %w", url, browser, err)
		}
		go cmd.Wait()
		return nil
	}
}
