package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const clientUserAgent = "polymarket-go-client"

// httpClient is a thin resty wrapper. It performs no automatic retries:
// L2 signatures are timestamp-scoped, so a failed authenticated request
// must be re-signed by the caller, not replayed.
type httpClient struct {
	rc  *resty.Client
	log *logrus.Entry
}

// requestOptions carries everything the transport needs for one call.
// body, when set, is the exact byte string that was HMAC-signed.
type requestOptions struct {
	headers map[string]string
	params  map[string]string
	body    string
	out     any
}

func newHTTPClient(host string, log *logrus.Entry) *httpClient {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(host, "/")).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", clientUserAgent)

	return &httpClient{rc: rc, log: log}
}

func (h *httpClient) do(ctx context.Context, method, endpoint string, opt *requestOptions) (*resty.Response, error) {
	req := h.rc.R().SetContext(ctx)

	if opt != nil {
		if len(opt.headers) > 0 {
			req.SetHeaders(opt.headers)
		}
		if len(opt.params) > 0 {
			req.SetQueryParams(opt.params)
		}
		if opt.body != "" {
			req.SetHeader("Content-Type", "application/json")
			req.SetBody(opt.body)
		}
		if opt.out != nil {
			req.SetResult(opt.out)
		}
	}

	var resp *resty.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = req.Get(endpoint)
	case http.MethodPost:
		resp, err = req.Post(endpoint)
	case http.MethodDelete:
		resp, err = req.Delete(endpoint)
	default:
		return nil, errors.Errorf("unsupported method %q", method)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, endpoint)
	}

	if resp.IsError() {
		// A 400/401 here may be a canonicalization or signature mismatch,
		// which is indistinguishable locally from any other rejection.
		h.log.WithFields(logrus.Fields{
			"method": method,
			"path":   endpoint,
			"status": resp.StatusCode(),
		}).Debug("request rejected")
		return resp, errors.Errorf("%s %s: status %d: %s", method, endpoint, resp.StatusCode(), resp.String())
	}

	return resp, nil
}
