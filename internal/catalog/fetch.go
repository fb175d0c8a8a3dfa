package catalog

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/resty.v1"
)

// FetchTimeout bounds a catalog download.
var FetchTimeout = 30 * time.Second

// Fetch downloads a catalog document from url.
func Fetch(url string) ([]byte, error) {
	resp, err := resty.New().
		SetTimeout(FetchTimeout).
		R().
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch %s", url)
	}

	if resp.StatusCode() > 299 {
		return nil, errors.Errorf("fetching %s failed: %s", url, resp.Status())
	}

	return resp.Body(), nil
}
