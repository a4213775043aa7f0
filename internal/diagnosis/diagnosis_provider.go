package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

//go:generate mockgen -source=diagnosis_provider.go -destination=mock/diagnosis_provider_mock.go -package=mock
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Diagnosis, error)
}

type httpProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

// NewHTTPProvider queries baseURL?q=<query> and expects a JSON array of
// diagnoses, or an object wrapping it under "data". The caller bounds each
// call through ctx.
func NewHTTPProvider(name, baseURL string, client *http.Client) Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpProvider{name: name, baseURL: strings.TrimRight(baseURL, "?"), client: client}
}

func (p *httpProvider) Name() string { return p.name }

func (p *httpProvider) Search(ctx context.Context, query string) ([]Diagnosis, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", p.name, err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", p.name, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", p.name, err)
	}
	return decodeDiagnoses(body)
}

func decodeDiagnoses(body []byte) ([]Diagnosis, error) {
	var list []Diagnosis
	if err := json.Unmarshal(body, &list); err == nil {
		return normalize(list), nil
	}

	var wrapped struct {
		Data []Diagnosis `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode diagnoses: %w", err)
	}
	return normalize(wrapped.Data), nil
}

func normalize(list []Diagnosis) []Diagnosis {
	out := make([]Diagnosis, 0, len(list))
	for _, d := range list {
		d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
		if d.Code == "" {
			continue
		}
		d.Description = strings.TrimSpace(d.Description)
		if d.Synonyms == nil {
			d.Synonyms = []string{}
		}
		out = append(out, d)
	}
	return out
}
