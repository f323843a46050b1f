// Package net fetches remote content for assessment.
package net

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 60
	clientAgent      = "symbi-cli"

	// Assessed content is text; anything past this is truncated.
	maxContentBytes = 4 << 20
)

var reqTransport = &http.Transport{
	MaxIdleConns:          maxIdleConns,
	IdleConnTimeout:       timeoutInSeconds * time.Second,
	ResponseHeaderTimeout: time.Duration(timeoutInSeconds) * time.Second,
}

var ErrURLNotFound = errors.New("URL not found")

// FetchText retrieves the body of a URL as text, truncated to a sane
// maximum. The assessment engine tolerates arbitrary bytes, so no
// content-type filtering is done here.
func FetchText(ctx context.Context, url string) (string, error) {
	c := http.Client{
		Timeout:   time.Duration(timeoutInSeconds) * time.Second,
		Transport: reqTransport,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "error creating HTTP Get request")
	}
	req.Header.Set("User-Agent", clientAgent)

	resp, err := c.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "error fetching: %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrURLNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error fetching content (status: %d - %s): %s", resp.StatusCode, resp.Status, url)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxContentBytes))
	if err != nil {
		return "", errors.Wrap(err, "error reading content body")
	}
	return string(b), nil
}
