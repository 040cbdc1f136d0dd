package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Collection wraps the list/get/delete calls of one collection.
type Collection[T any] struct {
	c    *Client
	path string
}

// Resource is a Collection whose records are created and replaced as is.
type Resource[T any] struct {
	Collection[T]
}

func newResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{Collection[T]{c: c, path: path}}
}

// List returns the whole collection. On failure the slice is empty, never nil.
func (r *Collection[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, nil, &out); err != nil {
		return []T{}, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.item(id), nil, nil, &out)
	return out, err
}

func (r *Collection[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r *Collection[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(strings.TrimSpace(id))
}

// Create posts v without its id; the server assigns one.
func (r *Resource[T]) Create(ctx context.Context, v T) (T, error) {
	var out T
	body, err := withoutID(v)
	if err != nil {
		return out, err
	}
	err = r.c.do(ctx, http.MethodPost, r.path, nil, body, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, r.item(id), nil, v, &out)
	return out, err
}

func withoutID(v any) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}
