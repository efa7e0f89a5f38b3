package sisbi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/02loveslollipop/sisbi-dashboard/internal/logger"
	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

// Upstream resources and the page sizes used to fetch them in one call.
const (
	ResourceEstablishments = "estabelecimentos-sisbi"
	ResourceCapacities     = "estabs-capacidades"
	ResourceDetail         = "estabelecimento-detalhe"

	EstablishmentsPageSize = 9999
	CapacitiesPageSize     = 99999

	DefaultBaseURL = "https://sistemasweb.agricultura.gov.br/sisbi_api"
	userAgent      = "SISBI-Dashboard/1.0"
)

// Config configures the upstream client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration // 0 disables response caching
}

// Client issues read-only requests against the SISBI registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	log        *logger.Logger
}

// NewClient builds a client. A nil logger discards output.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With("component", "sisbi"),
	}
	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL, cfg.CacheTTL*2)
	}
	return c
}

// FetchCollection returns the raw items of one page of a collection resource.
func (c *Client) FetchCollection(ctx context.Context, resource string, page, pageSize int) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("count", strconv.Itoa(pageSize))
	target := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, q.Encode())

	body, cached, err := c.get(ctx, resource, target)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		upstreamRequests.WithLabelValues(resource, outcomeDecodeError).Inc()
		return nil, &DecodeError{Resource: resource, Err: err}
	}

	if !cached {
		c.remember(target, body)
	}
	return items, nil
}

// FetchEstablishments fetches the whole establishments collection.
func (c *Client) FetchEstablishments(ctx context.Context) ([]models.RawEstablishment, error) {
	items, err := c.FetchCollection(ctx, ResourceEstablishments, 0, EstablishmentsPageSize)
	if err != nil {
		return nil, err
	}
	return decodeItems[models.RawEstablishment](c.log, ResourceEstablishments, items), nil
}

// FetchCapacities fetches the whole capacities collection.
func (c *Client) FetchCapacities(ctx context.Context) ([]models.RawCapacityRecord, error) {
	items, err := c.FetchCollection(ctx, ResourceCapacities, 0, CapacitiesPageSize)
	if err != nil {
		return nil, err
	}
	return decodeItems[models.RawCapacityRecord](c.log, ResourceCapacities, items), nil
}

// FetchEstablishmentDetail fetches a single establishment with its animals.
func (c *Client) FetchEstablishmentDetail(ctx context.Context, id string) (models.RawEstablishmentDetail, error) {
	target := fmt.Sprintf("%s/%s/%s", c.baseURL, ResourceEstablishments, url.PathEscape(id))

	body, cached, err := c.get(ctx, ResourceDetail, target)
	if err != nil {
		return models.RawEstablishmentDetail{}, err
	}

	var detail models.RawEstablishmentDetail
	if err := models.DecodeLenient(body, &detail); err != nil {
		upstreamRequests.WithLabelValues(ResourceDetail, outcomeDecodeError).Inc()
		return models.RawEstablishmentDetail{}, &DecodeError{Resource: ResourceDetail, Err: err}
	}

	if !cached {
		c.remember(target, body)
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, resource, target string) ([]byte, bool, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(target); ok {
			if body, ok := v.([]byte); ok {
				upstreamCacheHits.WithLabelValues(resource).Inc()
				c.log.Debug("upstream cache hit", "resource", resource)
				return body, true, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, &TransportError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	upstreamDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequests.WithLabelValues(resource, outcomeNetworkError).Inc()
		return nil, false, &TransportError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstreamRequests.WithLabelValues(resource, outcomeHTTPError).Inc()
		return nil, false, &TransportError{Resource: resource, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamRequests.WithLabelValues(resource, outcomeNetworkError).Inc()
		return nil, false, &TransportError{Resource: resource, Err: fmt.Errorf("read body: %w", err)}
	}

	upstreamRequests.WithLabelValues(resource, outcomeOK).Inc()
	return body, false, nil
}

func (c *Client) remember(target string, body []byte) {
	if c.cache == nil {
		return
	}
	c.cache.Set(target, body, cache.DefaultExpiration)
}

// decodeItems decodes each item on its own so one malformed entry does not
// sink the whole collection. Non-object items are dropped.
func decodeItems[T any](log *logger.Logger, resource string, items []json.RawMessage) []T {
	out := make([]T, 0, len(items))
	skipped := 0
	for _, item := range items {
		if !models.IsObject(item) {
			skipped++
			continue
		}
		var v T
		if err := models.DecodeLenient(item, &v); err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	if skipped > 0 {
		skippedRecords.WithLabelValues(resource).Add(float64(skipped))
		log.Debug("skipped malformed items", "resource", resource, "skipped", skipped, "kept", len(out))
	}
	return out
}
