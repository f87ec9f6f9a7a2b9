package harvest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind classifies a page-level failure. Every kind is handled the same
// way at the orchestration boundary, log and move on, but the
// classification makes the log stream diagnosable.
type Kind string

const (
	// KindTransient covers network failures and timeouts.
	KindTransient Kind = "transient"
	// KindParse covers listing pages that could not be parsed.
	KindParse Kind = "parse"
	// KindUnexpected covers everything else.
	KindUnexpected Kind = "unexpected"
)

// ErrMalformedPage marks listing page parse failures.
var ErrMalformedPage = errors.New("malformed listing page")

// PageError is a classified failure while processing one listing page.
type PageError struct {
	Kind Kind
	Page string
	Err  error
}

// Error returns the error message.
func (e *PageError) Error() string {
	return fmt.Sprintf("%s error on %s: %v", e.Kind, e.Page, e.Err)
}

// Unwrap returns the underlying error.
func (e *PageError) Unwrap() error {
	return e.Err
}

// classify maps an error to its failure kind.
func classify(err error) Kind {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindTransient
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}

	if errors.Is(err, ErrMalformedPage) {
		return KindParse
	}

	return KindUnexpected
}

// pageError wraps err as a classified PageError for the given page URL.
func pageError(pageURL string, err error) *PageError {
	return &PageError{Kind: classify(err), Page: pageURL, Err: err}
}
