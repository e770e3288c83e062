// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postman

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// FetchResult carries one fetched collection or the error that ends the
// stream. Content holds the full API payload, written verbatim to disk by
// the export collaborator.
type FetchResult struct {
	UID      string
	Content  map[string]any
	Filename string
	Err      error
}

// FetchCollections retrieves the content of each collection concurrently
// and streams results on the returned channel as requests complete, not in
// uids order. Each request runs under the per-fetch timeout. The consumer
// should stop at the first result with a non-nil Err; results already
// consumed are not rolled back. The channel is closed once every request
// has finished.
//
// The export filename is "{collection.info.name}_{date}.json" with the
// date captured once, before any request is issued, so all filenames of
// one batch agree even when fetches straddle midnight.
func (c *Client) FetchCollections(ctx context.Context, uids []string, apiKey string) (<-chan FetchResult, error) {
	if apiKey == "" {
		return nil, &MissingAPIKeyError{}
	}

	date := time.Now().Format("2006-01-02")

	out := make(chan FetchResult, len(uids))
	var wg sync.WaitGroup

	for _, uid := range uids {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			content, filename, err := c.fetchOne(ctx, uid, date, apiKey)
			out <- FetchResult{UID: uid, Content: content, Filename: filename, Err: err}
		}(uid)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

// fetchOne retrieves one collection and derives its export filename.
func (c *Client) fetchOne(ctx context.Context, uid, date, apiKey string) (map[string]any, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBaseURL+"/collections/"+uid, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating fetch request for %q: %w", uid, err)
	}

	statusCode, body, err := c.do(req, apiKey)
	if err != nil {
		return nil, "", fmt.Errorf("fetching collection %q: %w", uid, err)
	}

	if !isSuccess(statusCode) {
		return nil, "", classifyStatus(statusCode, body)
	}

	var content map[string]any
	if err := json.Unmarshal(body, &content); err != nil {
		return nil, "", fmt.Errorf("parsing collection %q: %w", uid, err)
	}

	name, err := collectionName(content)
	if err != nil {
		return nil, "", err
	}

	return content, fmt.Sprintf("%s_%s.json", name, date), nil
}

// collectionName extracts collection.info.name from a fetched payload. A
// missing or non-object level reports the first absent key on the path.
func collectionName(content map[string]any) (string, error) {
	node := any(content)
	for _, key := range []string{"collection", "info", "name"} {
		obj, ok := node.(map[string]any)
		if !ok {
			return "", &MissingKeyError{Key: key}
		}
		node, ok = obj[key]
		if !ok {
			return "", &MissingKeyError{Key: key}
		}
	}

	name, ok := node.(string)
	if !ok {
		return "", &MissingKeyError{Key: "name"}
	}
	return name, nil
}
