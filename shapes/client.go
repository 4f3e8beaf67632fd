package shapes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"
)

// Provider returns zero or more encoded polyline strings for a route.
type Provider interface {
	Shapes(ctx context.Context, routeID string) ([]string, error)
}

// MBTAClient queries the MBTA V3 route_patterns endpoint for each
// route's canonical shapes, one direction per pattern.
type MBTAClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewMBTAClient creates a shape provider against the given API base URL.
func NewMBTAClient(baseURL string, maxRetries int) *MBTAClient {
	return &MBTAClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		maxRetries: maxRetries,
	}
}

// jsonapi mirrors the subset of the JSON:API response the shape lookup
// needs: route_patterns in data, trips and shapes in included.
type jsonapiDoc struct {
	Data     []jsonapiResource `json:"data"`
	Included []jsonapiResource `json:"included"`
}

type jsonapiResource struct {
	Type          string                    `json:"type"`
	ID            string                    `json:"id"`
	Attributes    map[string]any            `json:"attributes"`
	Relationships map[string]jsonapiRelSlot `json:"relationships"`
}

type jsonapiRelSlot struct {
	Data *jsonapiRef `json:"data"`
}

type jsonapiRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Shapes fetches the canonical polylines for one route, retrying
// transient failures with exponential backoff until the context or the
// retry budget runs out.
func (c *MBTAClient) Shapes(ctx context.Context, routeID string) ([]string, error) {
	q := url.Values{}
	q.Set("filter[route]", routeID)
	q.Set("filter[canonical]", "true")
	q.Set("filter[direction_id]", "0")
	q.Set("include", "representative_trip.shape")
	q.Set("fields[shape]", "polyline")
	reqURL := c.baseURL + "/route_patterns?" + q.Encode()

	var lastErr error
	backoff := 500 * time.Millisecond
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		polylines, err := c.fetchOnce(ctx, reqURL)
		if err == nil {
			return polylines, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("route %s after %d attempts: %w", routeID, c.maxRetries+1, lastErr)
}

func (c *MBTAClient) fetchOnce(ctx context.Context, reqURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.api+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch route patterns: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, reqURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var doc jsonapiDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode route patterns: %w", err)
	}
	return extractPolylines(&doc), nil
}

// extractPolylines walks route_pattern -> representative_trip -> shape
// and returns the encoded polylines in pattern order.
func extractPolylines(doc *jsonapiDoc) []string {
	shapePolyline := map[string]string{}
	tripShape := map[string]string{}
	for _, inc := range doc.Included {
		switch inc.Type {
		case "shape":
			if p, ok := inc.Attributes["polyline"].(string); ok && p != "" {
				shapePolyline[inc.ID] = p
			}
		case "trip":
			if rel, ok := inc.Relationships["shape"]; ok && rel.Data != nil {
				tripShape[inc.ID] = rel.Data.ID
			}
		}
	}

	var polylines []string
	for _, rp := range doc.Data {
		rel, ok := rp.Relationships["representative_trip"]
		if !ok || rel.Data == nil {
			continue
		}
		shapeID, ok := tripShape[rel.Data.ID]
		if !ok {
			continue
		}
		if p, ok := shapePolyline[shapeID]; ok {
			polylines = append(polylines, p)
		}
	}
	return polylines
}

// FetchRouteShapes resolves encoded polylines for every route id using
// the cache when fresh, otherwise the provider, with at most
// maxConcurrency in-flight lookups. Failed routes are logged and
// omitted; the result is whatever geometry could be obtained before the
// context deadline.
func FetchRouteShapes(ctx context.Context, p Provider, cache *Cache, routeIDs []string, maxConcurrency int) map[string][]string {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	sorted := make([]string, len(routeIDs))
	copy(sorted, routeIDs)
	sort.Strings(sorted)

	var runID string
	if cache != nil {
		id, err := cache.BeginRun(ctx)
		if err != nil {
			log.Printf("WARNING: shape cache unavailable: %v", err)
			cache = nil
		} else {
			runID = id
		}
	}

	var mu sync.Mutex
	out := map[string][]string{}
	jobs := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < maxConcurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for routeID := range jobs {
				polylines := lookupRoute(ctx, p, cache, runID, routeID)
				if len(polylines) == 0 {
					continue
				}
				mu.Lock()
				out[routeID] = polylines
				mu.Unlock()
			}
		}()
	}
	for _, id := range sorted {
		select {
		case <-ctx.Done():
		case jobs <- id:
		}
	}
	close(jobs)
	wg.Wait()
	return out
}

func lookupRoute(ctx context.Context, p Provider, cache *Cache, runID, routeID string) []string {
	if cache != nil {
		if polylines, ok := cache.Get(ctx, routeID); ok {
			return polylines
		}
	}
	polylines, err := p.Shapes(ctx, routeID)
	if err != nil {
		log.Printf("WARNING: no shapes for route %s: %v", routeID, err)
		return nil
	}
	if cache != nil && len(polylines) > 0 {
		if err := cache.Put(ctx, runID, routeID, polylines); err != nil {
			log.Printf("WARNING: cache write for route %s: %v", routeID, err)
		}
	}
	return polylines
}
