// Package wdlapi is a client for the hosted indicator and audience APIs.
package wdlapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/huangsam/nowcast/core"
	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
)

// CacheVersion invalidates stale cached responses when the response
// handling changes. Bump on any incompatible change to the stored payload.
const CacheVersion = 1

// API endpoint paths, relative to the configured base URL.
const (
	nationalPath    = "/national"
	subnationalPath = "/subnational"
	audiencePath    = "/audience"
)

// Client talks to the hosted APIs over HTTP with a read-through response
// cache. A zero TTL disables freshness checks.
type Client struct {
	http  *resty.Client
	store contract.CacheStore
	ttl   time.Duration
}

var _ contract.IndicatorClient = &Client{} // Compile-time check

// NewClient builds a client from the validated config. The cache manager
// may be nil or hold a nil store, in which case every request goes to the
// network.
func NewClient(cfg *contract.Config, mgr contract.CacheManager) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(contract.DefaultTimeout).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		http.SetAuthToken(cfg.Token)
	}
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetResponseStore()
	}
	return &Client{
		http:  http,
		store: store,
		ttl:   cfg.CacheTTL,
	}
}

// FetchCountry retrieves and flattens indicator estimates for one country.
func (c *Client) FetchCountry(ctx context.Context, q contract.IndicatorQuery, country string) ([]schema.EstimateRecord, error) {
	path := nationalPath
	if q.Level == schema.SubnationalLevel {
		path = subnationalPath
	}

	params := url.Values{}
	params.Set("iso3", country)
	if q.Indicator != "" {
		params.Set("indicator", q.Indicator)
	}
	if q.StartDate != "" {
		params.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("end_date", q.EndDate)
	}

	body, err := c.getWithCache(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrMalformedInput, err)
	}
	if q.Level == schema.SubnationalLevel {
		return core.FlattenSubnational(tree)
	}
	return core.FlattenNational(tree)
}

// FetchMany retrieves estimates for every country in the query. A country
// that fails is recorded in the result and never aborts the batch.
func (c *Client) FetchMany(ctx context.Context, q contract.IndicatorQuery) (*schema.FetchResult, error) {
	result := &schema.FetchResult{Failed: make(map[string]error)}
	for _, country := range q.Countries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := c.FetchCountry(ctx, q, country)
		if err != nil {
			result.Failed[country] = err
			continue
		}
		result.Records = append(result.Records, records...)
	}
	return result, nil
}

// audiencePayload is the wire shape of an audience count response.
type audiencePayload struct {
	MAU      int64 `json:"mau"`
	MAULower int64 `json:"mau_lower"`
	MAUUpper int64 `json:"mau_upper"`
}

// FetchAudience retrieves a demographic audience count from the marketing API.
func (c *Client) FetchAudience(ctx context.Context, q contract.AudienceQuery) (*schema.AudienceEstimate, error) {
	params := url.Values{}
	params.Set("iso3", q.Country)
	params.Set("age_min", strconv.Itoa(q.AgeMin))
	if q.AgeMax != 0 {
		params.Set("age_max", strconv.Itoa(q.AgeMax))
	}
	params.Set("genders", q.Genders)

	body, err := c.getWithCache(ctx, audiencePath, params)
	if err != nil {
		return nil, err
	}

	var payload audiencePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrMalformedInput, err)
	}
	return &schema.AudienceEstimate{
		Country:  q.Country,
		AgeMin:   q.AgeMin,
		AgeMax:   q.AgeMax,
		Genders:  q.Genders,
		MAU:      payload.MAU,
		MAULower: payload.MAULower,
		MAUUpper: payload.MAUUpper,
	}, nil
}

// getWithCache returns the response body for a GET request, consulting the
// response cache first. url.Values encodes keys in sorted order, so the
// cache key is stable for equivalent requests.
func (c *Client) getWithCache(ctx context.Context, path string, params url.Values) ([]byte, error) {
	key := path + "?" + params.Encode()

	if c.store != nil {
		value, version, ts, err := c.store.Get(key)
		if err == nil && version == CacheVersion && c.fresh(ts) {
			return value, nil
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			contract.LogWarn("Cache read failed", err)
		}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", schema.ErrRequestFailed, path, err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: GET %s returned %s", schema.ErrRequestFailed, path, res.Status())
	}

	body := res.Body()
	if c.store != nil {
		if err := c.store.Set(key, body, CacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Cache write failed", err)
		}
	}
	return body, nil
}

// fresh reports whether a cache timestamp is within the TTL window.
func (c *Client) fresh(ts int64) bool {
	if c.ttl <= 0 {
		return true
	}
	return time.Since(time.Unix(ts, 0)) <= c.ttl
}
