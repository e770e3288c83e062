// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postman

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// ResolveUIDs looks up the UID of each named collection concurrently and
// returns the UIDs in completion order, which is unspecified relative to
// names. The first failed lookup aborts the batch and is returned;
// in-flight sibling requests are left to finish in the background and
// their results are discarded.
func (c *Client) ResolveUIDs(ctx context.Context, names []string, apiKey string) ([]string, error) {
	if apiKey == "" {
		return nil, &MissingAPIKeyError{}
	}

	type lookup struct {
		uid string
		err error
	}

	// Buffered so abandoned goroutines never block on send.
	ch := make(chan lookup, len(names))
	var wg sync.WaitGroup

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			uid, err := c.searchByName(ctx, name, apiKey)
			ch <- lookup{uid: uid, err: err}
		}(name)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	uids := make([]string, 0, len(names))
	for l := range ch {
		if l.err != nil {
			return nil, l.err
		}
		uids = append(uids, l.uid)
	}
	return uids, nil
}

// searchByName resolves a single collection name to its UID. The name
// travels with the lookup so a zero-match result can report which name
// failed even though responses are consumed out of order.
func (c *Client) searchByName(ctx context.Context, name, apiKey string) (string, error) {
	reqURL := apiBaseURL + "/collections?" + url.Values{"name": {name}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating search request for %q: %w", name, err)
	}

	statusCode, body, err := c.do(req, apiKey)
	if err != nil {
		return "", fmt.Errorf("searching collection %q: %w", name, err)
	}

	if !isSuccess(statusCode) {
		return "", classifyStatus(statusCode, body)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("parsing search response for %q: %w", name, err)
	}

	raw, ok := payload["collections"]
	if !ok {
		return "", &MissingKeyError{Key: "collections"}
	}

	var collections []struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal(raw, &collections); err != nil {
		return "", fmt.Errorf("parsing collections list for %q: %w", name, err)
	}

	// The API returns at most one match per exact name search; an empty
	// list means the name does not exist upstream.
	if len(collections) == 0 {
		return "", &NotFoundError{Name: name}
	}
	return collections[0].UID, nil
}
