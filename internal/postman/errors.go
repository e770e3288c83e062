// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postman

import "fmt"

// MissingAPIKeyError reports that no API key was resolvable when an
// operation started. It is returned before any network call is made.
type MissingAPIKeyError struct{}

func (*MissingAPIKeyError) Error() string {
	return "POSTMAN_API_KEY must be provided either in ENVIRONMENT " +
		"(export POSTMAN_API_KEY=<key>) or passed in api-key parameter (--api-key <key>)"
}

// AuthenticationError reports an upstream 401 and carries the message the
// API returned in its error body.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// RateLimitError reports an upstream 429. The API's retry-after hints are
// not consulted; the whole batch fails.
type RateLimitError struct{}

func (*RateLimitError) Error() string {
	return "too many requests to API, try again later"
}

// RetrievalError reports any non-2xx status other than 401 and 429.
type RetrievalError struct {
	StatusCode int
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("error occurred while getting collection, status: %d", e.StatusCode)
}

// MissingKeyError reports a 2xx response whose JSON body lacks an expected
// key. Key names the first absent key on the expected path.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("response with collection does not have key %q", e.Key)
}

// NotFoundError reports a name search that matched zero collections.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection not found with provided name: %q", e.Name)
}
