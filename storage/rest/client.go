// Package restrepo implements the domain repositories over the backend's REST API.
package restrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/session"
)

// Client sends JSON requests to the backend and maps failures to *core.APIError.
type Client struct {
	baseURL    string
	http       *rest.Client
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
}

func NewClient(conf *core.Config, validate *validator.Validate, translator ut.Translator, logger core.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(conf.API.BaseURL, "/"),
		http:       &rest.Client{HTTPClient: &http.Client{Timeout: conf.API.Timeout}},
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

// URL returns the absolute address of path.
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

type call struct {
	method rest.Method
	path   string
	query  map[string]string
	accept string
	in     interface{}
}

func (c *Client) do(ctx context.Context, cl call) (*rest.Response, error) {
	req := rest.Request{
		Method:      cl.method,
		BaseURL:     c.URL(cl.path),
		QueryParams: cl.query,
		Headers: map[string]string{
			"Accept":       "application/json",
			"X-Request-ID": uuid.New().String(),
		},
	}
	if cl.accept != "" {
		req.Headers["Accept"] = cl.accept
	}
	if s, ok := session.FromContext(ctx); ok && s.Token != "" {
		req.Headers["Authorization"] = "Token " + s.Token
	}
	if cl.in != nil {
		body, err := json.Marshal(cl.in)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s %s", cl.method, cl.path)
		}
		req.Body = body
		req.Headers["Content-Type"] = "application/json"
	}

	resp, err := c.http.SendWithContext(ctx, req)
	if err != nil {
		return nil, &core.APIError{Kind: core.KindNetwork, Method: string(cl.method), Path: cl.path, Err: err}
	}
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.Error("backend error", fmt.Sprintf("%s %s: %d", cl.method, cl.path, resp.StatusCode), map[string]interface{}{
			"request_id": req.Headers["X-Request-ID"],
			"body":       resp.Body,
		})
		return nil, &core.APIError{
			Kind:       core.KindServer,
			Method:     string(cl.method),
			Path:       cl.path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, &core.APIError{
			Kind:       core.KindValidation,
			Method:     string(cl.method),
			Path:       cl.path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}
	return resp, nil
}

// send performs cl and decodes the response into out, when given.
func (c *Client) send(ctx context.Context, cl call, out interface{}) error {
	resp, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(resp.Body), out); err != nil {
		return c.badResponse(cl, errors.Wrap(err, "decoding response"))
	}
	if err := c.check(out); err != nil {
		return c.badResponse(cl, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.send(ctx, call{method: rest.Get, path: path}, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	return c.send(ctx, call{method: rest.Post, path: path, in: in}, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	return c.send(ctx, call{method: rest.Put, path: path, in: in}, out)
}

func (c *Client) remove(ctx context.Context, path string) error {
	return c.send(ctx, call{method: rest.Delete, path: path}, nil)
}

// raw returns the body as is, for non JSON downloads.
func (c *Client) raw(ctx context.Context, path, accept string) ([]byte, error) {
	resp, err := c.do(ctx, call{method: rest.Get, path: path, accept: accept})
	if err != nil {
		return nil, err
	}
	return []byte(resp.Body), nil
}

func (c *Client) badResponse(cl call, err error) error {
	c.logger.Error("invalid backend response", err)
	return &core.APIError{
		Kind:       core.KindServer,
		Method:     string(cl.method),
		Path:       cl.path,
		StatusCode: http.StatusOK,
		Message:    "resposta inválida do servidor",
		Err:        err,
	}
}

// check validates a decoded struct or every struct of a decoded slice.
func (c *Client) check(out interface{}) error {
	rv := reflect.Indirect(reflect.ValueOf(out))
	switch rv.Kind() {
	case reflect.Struct:
		return core.ValidateStruct(c.validate, c.translator, rv.Interface(), nil)
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			elem := reflect.Indirect(rv.Index(i))
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := core.ValidateStruct(c.validate, c.translator, elem.Interface(), nil); err != nil {
				return errors.Wrapf(err, "item %d", i)
			}
		}
	}
	return nil
}

// errorMessage extracts a readable message from an error body: {"error": "..."},
// {"detail": "..."} or a field -> message map.
func errorMessage(body string) string {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	for _, k := range []string{"error", "detail", "message"} {
		if msg, ok := payload[k].(string); ok {
			return msg
		}
	}
	msgs := make([]string, 0, len(payload))
	for field, v := range payload {
		switch msg := v.(type) {
		case string:
			msgs = append(msgs, field+": "+msg)
		case []interface{}:
			for _, m := range msg {
				msgs = append(msgs, fmt.Sprintf("%s: %v", field, m))
			}
		}
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func itoa(i int) string {
	return fmt.Sprintf("%d", i)
}
