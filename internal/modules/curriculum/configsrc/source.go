package configsrc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	apperr "github.com/yungbote/sotfinder-backend/internal/pkg/errors"
)

// Source loads the raw configuration document.
type Source interface {
	Load(ctx context.Context) ([]types.TopicConfig, error)
}

// NewSource picks an HTTP or file source from location. An empty location yields a
// source that always fails with ErrMissingSource.
func NewSource(location string, client *http.Client) Source {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return missingSource{}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		if client == nil {
			client = http.DefaultClient
		}
		return &httpSource{url: location, client: client}
	default:
		path := location
		if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
			path = u.Path
		}
		return &fileSource{path: path}
	}
}

type missingSource struct{}

func (missingSource) Load(context.Context) ([]types.TopicConfig, error) {
	return nil, apperr.ErrMissingSource
}

type httpSource struct {
	url    string
	client *http.Client
}

func (s *httpSource) Load(ctx context.Context) ([]types.TopicConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch curriculum config: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read curriculum config: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &SourceHTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode curriculum config: %w", err)
	}
	return configsFromDocument(doc), nil
}

type fileSource struct {
	path string
}

func (s *fileSource) Load(ctx context.Context) ([]types.TopicConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum config: %w", err)
	}
	var doc any
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &doc)
	default:
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode curriculum config %s: %w", s.path, err)
	}
	return configsFromDocument(doc), nil
}

// SourceHTTPError is a non-2xx response from the configuration endpoint.
type SourceHTTPError struct {
	StatusCode int
	Status     string
}

func (e *SourceHTTPError) Error() string {
	return fmt.Sprintf("failed to fetch curriculum config: %s", e.Status)
}

func (e *SourceHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// configsFromDocument accepts an array of objects or a single object; anything else is empty.
func configsFromDocument(doc any) []types.TopicConfig {
	switch t := doc.(type) {
	case []any:
		out := make([]types.TopicConfig, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, types.TopicConfig(m))
			}
		}
		return out
	case map[string]any:
		return []types.TopicConfig{types.TopicConfig(t)}
	default:
		return []types.TopicConfig{}
	}
}
