package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/byxorna/tinyhouse/pkg/config"
	"github.com/google/uuid"
	"github.com/machinebox/graphql"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

// Policy controls whether a query may be answered from the cache
type Policy int

const (
	CacheFirst Policy = iota
	NetworkOnly
)

// Request is a single GraphQL operation
type Request struct {
	Operation string
	Query     string
	Variables map[string]interface{}
	Policy    Policy
}

func (r Request) isMutation() bool {
	return strings.HasPrefix(strings.TrimSpace(r.Query), "mutation")
}

// Executor runs a request and decodes the response data into out. It returns
// exactly once per call.
type Executor interface {
	Execute(ctx context.Context, req Request, out interface{}) error
}

// TransportError is any failure to get data back for a request: the HTTP
// round trip, an open breaker, or errors reported by the server.
type TransportError struct {
	Operation string
	Messages  []string
	Err       error
}

func (e *TransportError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("%s: %s", e.Operation, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// serverError means the server answered, so it does not count against the breaker
type serverError struct {
	messages []string
}

func (e *serverError) Error() string { return strings.Join(e.messages, "; ") }

type Client struct {
	gql     *graphql.Client
	breaker *gobreaker.CircuitBreaker
	cache   *cache
	log     logrus.FieldLogger
}

// New creates a client for the API at cfg.Endpoint. Every request carries
// the token from tokens as a bearer credential when one is available.
func New(cfg *config.Config, tokens oauth2.TokenSource, log logrus.FieldLogger) *Client {
	hc := &http.Client{
		Timeout:   cfg.RequestTimeout,
		Transport: newTransport(tokens, http.DefaultTransport),
	}
	return &Client{
		gql:     graphql.NewClient(cfg.Endpoint, graphql.WithHTTPClient(hc)),
		breaker: newBreaker("tinyhouse-api", cfg.Breaker, log),
		cache:   newCache(),
		log:     log,
	}
}

func cacheKey(req Request) (string, error) {
	key, err := json.Marshal(struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables,omitempty"`
	}{req.Query, req.Variables})
	return string(key), err
}

func (c *Client) Execute(ctx context.Context, req Request, out interface{}) error {
	key, err := cacheKey(req)
	if err != nil {
		return fmt.Errorf("unable to encode %s: %w", req.Operation, err)
	}

	if !req.isMutation() && req.Policy == CacheFirst {
		if data, ok := c.cache.get(key); ok {
			c.log.WithField("operation", req.Operation).Debug("served from cache")
			return decode(req.Operation, data, out)
		}
	}

	data, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if !req.isMutation() {
		c.cache.put(key, data)
	}
	return decode(req.Operation, data, out)
}

// Reset drops every cached result, used when the viewer changes
func (c *Client) Reset() {
	c.cache.reset()
}

func (c *Client) do(ctx context.Context, req Request) (json.RawMessage, error) {
	requestID := uuid.New().String()
	start := time.Now()
	log := c.log.WithFields(logrus.Fields{
		"operation":  req.Operation,
		"request_id": requestID,
	})

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.run(ctx, requestID, req)
	})
	log = log.WithField("duration", time.Since(start))
	if err != nil {
		log.WithError(err).Warn("request failed")
		terr := TransportError{Operation: req.Operation, Err: err}
		var serr *serverError
		if errors.As(err, &serr) {
			terr.Messages = serr.messages
		}
		return nil, &terr
	}
	log.Debug("request completed")
	return res.(json.RawMessage), nil
}

func (c *Client) run(ctx context.Context, requestID string, req Request) (json.RawMessage, error) {
	gr := graphql.NewRequest(req.Query)
	for k, v := range req.Variables {
		gr.Var(k, v)
	}
	gr.Header.Set("X-Request-ID", requestID)

	var data json.RawMessage
	if err := c.gql.Run(ctx, gr, &data); err != nil {
		return nil, classify(err)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, errors.New("response carried no data")
	}
	return data, nil
}

// graphql.Client reports the first error in the response body as
// "graphql: <message>". Failures to reach the server or read its answer come
// back as url errors or with their own prefixes.
const serverErrorPrefix = "graphql: "

func classify(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return err
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, serverErrorPrefix) || strings.HasPrefix(msg, serverErrorPrefix+"server returned") {
		return err
	}
	return &serverError{messages: []string{strings.TrimPrefix(msg, serverErrorPrefix)}}
}

func decode(operation string, data json.RawMessage, out interface{}) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Operation: operation, Err: fmt.Errorf("unable to decode data: %w", err)}
	}
	return nil
}
