package shopify

import (
	"encoding/json"
	"fmt"
)

// Kind classifies the remote-call failure styles the gateway can encounter.
// Each style has its own constructor below; all converge on *Error so
// callers never need to probe nested optional fields themselves.
type Kind string

const (
	KindAPI     Kind = "api"     // non-2xx HTTP response from the REST API
	KindGraphQL Kind = "graphql" // GraphQL errors or userErrors payload
	KindNetwork Kind = "network" // dial, TLS or timeout failure
	KindDecode  Kind = "decode"  // response body was not the expected JSON
)

// Error is the single normalized error value produced by the gateway.
// Status is zero for failures that never received an HTTP response.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("shopify: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("shopify: %s: %s", e.Kind, e.Message)
}

// NotFound reports whether the failure was a REST 404 or a null GraphQL node.
func (e *Error) NotFound() bool { return e.Status == 404 }

// restErrorBody is the shape Shopify's REST API uses for error responses.
// Either key may be present; "errors" can be a string or an object.
type restErrorBody struct {
	Errors json.RawMessage `json:"errors"`
	Err    string          `json:"error"`
}

// apiError builds an Error from a non-2xx REST response, extracting the
// message from whichever error key the body carries.
func apiError(status int, body []byte) *Error {
	msg := "Request failed"
	var parsed restErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case len(parsed.Errors) > 0:
			var s string
			if json.Unmarshal(parsed.Errors, &s) == nil {
				msg = s
			} else {
				msg = string(parsed.Errors)
			}
		case parsed.Err != "":
			msg = parsed.Err
		}
	}
	return &Error{Kind: KindAPI, Status: status, Message: msg}
}

// graphqlError builds an Error from GraphQL errors or userErrors messages.
func graphqlError(messages []string) *Error {
	msg := "GraphQL request failed"
	if len(messages) > 0 {
		msg = messages[0]
		for _, m := range messages[1:] {
			msg += "; " + m
		}
	}
	return &Error{Kind: KindGraphQL, Message: msg}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error()}
}

func decodeError(err error) *Error {
	return &Error{Kind: KindDecode, Message: "invalid JSON response: " + err.Error()}
}

// notFoundError rewords a 404 on product or variant lookups into a domain
// message so callers can surface something actionable.
func notFoundError(resource string, id int64) *Error {
	return &Error{
		Kind:   KindAPI,
		Status: 404,
		Message: fmt.Sprintf("%s with ID %q not found in Shopify store. Verify the %s exists and is active in the Shopify admin.",
			resource, fmt.Sprint(id), resource),
	}
}
