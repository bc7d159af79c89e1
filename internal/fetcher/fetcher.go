package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

const (
	defaultMaxBodyBytes   = 8 * 1024 * 1024
	defaultAcceptLanguage = "en-US,en;q=0.9"
	acceptHTML            = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptJSON            = "application/json, text/plain, */*"
)

// Kind is expected kind of response body.
type Kind int

const (
	KindHTML Kind = iota
	KindJSON
)

// Request describes single GET request.
type Request struct {
	URL     string
	Params  url.Values
	Headers map[string]string
	// Locale is storefront locale (e.g. "en-gb") used to build Accept-Language header.
	Locale string
	Kind   Kind
}

// Response is fetched http response.
type Response struct {
	// URL is final url after redirects.
	URL        string
	StatusCode int
	Body       []byte
}

// Options controls fetching behaviour.
type Options struct {
	UserAgent    string
	Retries      int
	Backoff      time.Duration
	MaxBodyBytes int64
	RateLimit    RateLimit
}

// Fetcher builds http requests and fetches storefront pages and APIs via http.
type Fetcher struct {
	client  *http.Client
	opts    Options
	limiter *HostLimiter
}

// NewFetcher returns new Fetcher.
func NewFetcher(client *http.Client, opts Options) *Fetcher {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	return &Fetcher{
		client:  client,
		opts:    opts,
		limiter: NewHostLimiter(opts.RateLimit),
	}
}

// Get fetches req, retrying transport errors, 429 and 5xx responses with linear backoff.
func (f *Fetcher) Get(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt <= f.opts.Retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, f.opts.Backoff*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}

		resp, retry, err := f.get(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}

	return nil, lastErr
}

// GetJSON fetches req and decodes its JSON body into dst.
func (f *Fetcher) GetJSON(ctx context.Context, req Request, dst any) error {
	req.Kind = KindJSON

	resp, err := f.Get(ctx, req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, dst); err != nil {
		return fmt.Errorf("can't decode json response: %w: %w", ErrInvalidJSON, err)
	}

	return nil
}

func (f *Fetcher) get(ctx context.Context, req Request) (*Response, bool, error) {
	httpReq, err := f.buildRequest(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if err := f.limiter.Wait(ctx, httpReq.URL.Host); err != nil {
		return nil, false, err
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("can't get http response: %w", ctx.Err())
		}
		return nil, true, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
		return nil, retry, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	if !contentTypeSupported(req.Kind, resp.Header.Get("Content-Type")) {
		return nil, false, ErrContentTypeNotSupported
	}

	body, err := f.readBody(resp)
	if err != nil {
		return nil, false, err
	}

	finalURL := httpReq.URL.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, false, nil
}

func (f *Fetcher) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("can't parse url: %w", err)
	}

	if len(req.Params) > 0 {
		query := target.Query()
		for key, values := range req.Params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		target.RawQuery = query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	switch req.Kind {
	case KindJSON:
		httpReq.Header.Set("Accept", acceptJSON)
	default:
		httpReq.Header.Set("Accept", acceptHTML)
	}
	httpReq.Header.Set("Accept-Encoding", "gzip, deflate, br")
	httpReq.Header.Set("Accept-Language", AcceptLanguage(req.Locale))
	httpReq.Header.Set("Cache-Control", "no-cache")
	if f.opts.UserAgent != "" {
		httpReq.Header.Set("User-Agent", f.opts.UserAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// readBody reads response body decoding its content encoding.
func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("can't decompress response: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(resp.Body)
	}

	body, err := io.ReadAll(io.LimitReader(reader, f.opts.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("can't read response body: %w", err)
	}
	if int64(len(body)) > f.opts.MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}

	return body, nil
}

// AcceptLanguage returns Accept-Language header value for storefront locale,
// e.g. "en-GB,en;q=0.8" for "en-gb".
func AcceptLanguage(locale string) string {
	lang, region, ok := strings.Cut(strings.TrimSpace(locale), "-")
	if !ok || lang == "" || region == "" {
		return defaultAcceptLanguage
	}
	lang = strings.ToLower(lang)
	return fmt.Sprintf("%s-%s,%s;q=0.8", lang, strings.ToUpper(region), lang)
}

func contentTypeSupported(kind Kind, contentType string) bool {
	if contentType == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	switch kind {
	case KindJSON:
		return strings.Contains(mediaType, "json") || mediaType == "text/plain"
	default:
		return mediaType == "text/html" || mediaType == "application/xhtml+xml"
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
