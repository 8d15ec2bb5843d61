package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SupabaseConfig carries the credential pair for the PostgREST endpoint.
// ServiceRoleKey is optional and only used for administrative writes; reads
// work with the anonymous key alone.
type SupabaseConfig struct {
	ProjectURL     string
	AnonKey        string
	ServiceRoleKey string
}

// SupabaseStore talks to a Supabase project over its PostgREST API
// (/rest/v1/<table> with apikey + Bearer headers and col=eq.val filters).
type SupabaseStore struct {
	prefix     string
	anonKey    string
	serviceKey string
	client     *http.Client
}

func NewSupabaseStore(cfg SupabaseConfig) (*SupabaseStore, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("project URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("anon key is required")
	}
	trimmed := strings.TrimRight(cfg.ProjectURL, "/")
	return &SupabaseStore{
		prefix:     trimmed + "/rest/v1",
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceRoleKey,
		client:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (s *SupabaseStore) Name() string { return "supabase" }

func (s *SupabaseStore) SelectAll(ctx context.Context, table string, dest any) error {
	body, _, err := s.do(ctx, http.MethodGet, table, "select=*", nil, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

func (s *SupabaseStore) Insert(ctx context.Context, table string, row any) error {
	payload, err := marshalRows(row)
	if err != nil {
		return err
	}
	_, _, err = s.do(ctx, http.MethodPost, table, "", payload, nil)
	return err
}

func (s *SupabaseStore) Update(ctx context.Context, table string, match map[string]string, patch any) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", table, err)
	}
	_, _, err = s.do(ctx, http.MethodPatch, table, matchQuery(match), body, nil)
	return err
}

func (s *SupabaseStore) Delete(ctx context.Context, table string, match map[string]string) error {
	if len(match) == 0 {
		return fmt.Errorf("refusing unfiltered delete on %s", table)
	}
	_, _, err := s.do(ctx, http.MethodDelete, table, matchQuery(match), nil, nil)
	return err
}

func (s *SupabaseStore) Upsert(ctx context.Context, table string, row any, onConflict string) error {
	payload, err := marshalRows(row)
	if err != nil {
		return err
	}
	query := ""
	if onConflict != "" {
		query = "on_conflict=" + url.QueryEscape(onConflict)
	}
	headers := map[string]string{"Prefer": "resolution=merge-duplicates"}
	_, _, err = s.do(ctx, http.MethodPost, table, query, payload, headers)
	return err
}

func (s *SupabaseStore) Count(ctx context.Context, table string) (int64, error) {
	headers := map[string]string{
		"Prefer": "count=exact",
		"Range":  "0-0",
	}
	_, resp, err := s.do(ctx, http.MethodGet, table, "select=id", nil, headers)
	if err != nil {
		return 0, err
	}
	// Content-Range: 0-0/42
	cr := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 {
		return 0, fmt.Errorf("missing count in Content-Range %q", cr)
	}
	total := cr[idx+1:]
	if total == "*" {
		return 0, nil
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse count %q: %w", cr, err)
	}
	return n, nil
}

// Ping issues the cheapest possible read against the configuration table.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	_, _, err := s.do(ctx, http.MethodGet, TableConfigurations, "select=id&limit=1", nil, nil)
	return err
}

func (s *SupabaseStore) do(ctx context.Context, method, table, query string, body []byte, extra map[string]string) ([]byte, *http.Response, error) {
	endpoint := s.prefix + "/" + url.PathEscape(table)
	if query != "" {
		endpoint += "?" + query
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, err
	}

	key := s.anonKey
	if s.serviceKey != "" && method != http.MethodGet {
		key = s.serviceKey
	}
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp, fmt.Errorf("%s %s: status %d: %s", method, table, resp.StatusCode, truncate(data, 200))
	}
	return data, resp, nil
}

// marshalRows wraps a single row in an array; PostgREST inserts take arrays.
func marshalRows(row any) ([]byte, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	if len(body) > 0 && body[0] == '[' {
		return body, nil
	}
	return append(append([]byte{'['}, body...), ']'), nil
}

// matchQuery renders equality filters as col=eq.val pairs, sorted for
// deterministic URLs.
func matchQuery(match map[string]string) string {
	keys := make([]string, 0, len(match))
	for k := range match {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"=eq."+url.QueryEscape(match[k]))
	}
	return strings.Join(parts, "&")
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
