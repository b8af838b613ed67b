// Package apitest provides an in-memory apiclient.API for service tests.
package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Call is one recorded request.
type Call struct {
	Method string
	Path   string
	Token  string
	Query  map[string]string
	Body   any
}

// Fake answers from Responses keyed by "METHOD path". A key in Errors
// fails that call instead. Unknown keys succeed with no data.
type Fake struct {
	mu        sync.Mutex
	Calls     []Call
	Responses map[string]any
	Errors    map[string]error
}

func New() *Fake {
	return &Fake{Responses: map[string]any{}, Errors: map[string]error{}}
}

// On sets the data returned for method and path.
func (f *Fake) On(method, path string, data any) *Fake {
	f.mu.Lock()
	f.Responses[method+" "+path] = data
	f.mu.Unlock()
	return f
}

// Fail makes method and path return err.
func (f *Fake) Fail(method, path string, err error) *Fake {
	f.mu.Lock()
	f.Errors[method+" "+path] = err
	f.mu.Unlock()
	return f
}

// Last returns the most recent call.
func (f *Fake) Last() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}

func (f *Fake) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

func (f *Fake) do(method, token, path string, query map[string]string, body, out any) error {
	f.mu.Lock()
	f.Calls = append(f.Calls, Call{Method: method, Path: path, Token: token, Query: query, Body: body})
	key := method + " " + path
	err := f.Errors[key]
	data, ok := f.Responses[key]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if !ok || out == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("apitest: marshal %s: %w", key, err)
	}
	return json.Unmarshal(b, out)
}

func (f *Fake) Get(_ context.Context, token, path string, query map[string]string, out any) error {
	return f.do(http.MethodGet, token, path, query, nil, out)
}

func (f *Fake) Post(_ context.Context, token, path string, body, out any) error {
	return f.do(http.MethodPost, token, path, nil, body, out)
}

func (f *Fake) Put(_ context.Context, token, path string, body, out any) error {
	return f.do(http.MethodPut, token, path, nil, body, out)
}

func (f *Fake) Delete(_ context.Context, token, path string) error {
	return f.do(http.MethodDelete, token, path, nil, nil, nil)
}
