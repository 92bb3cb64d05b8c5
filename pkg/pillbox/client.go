package pillbox

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"github.com/matzehuels/pillbox/pkg/errors"
	"github.com/matzehuels/pillbox/pkg/observability"
)

// DefaultBaseURL is the Pillbox search endpoint.
const DefaultBaseURL = "http://pillbox.nlm.nih.gov/PHP/pillboxAPIService.php"

// NoRecordsFound is the exact body the service sends when nothing matches.
const NoRecordsFound = "No records found"

// Result is the outcome of a successful search.
//
// When the service answers with [NoRecordsFound], NoRecords is true and Pills
// is nil. An XML document without <pill> elements gives NoRecords false and
// an empty Pills.
type Result struct {
	Pills     []*Pill
	NoRecords bool
}

// Len returns the number of pills.
func (r *Result) Len() int { return len(r.Pills) }

// Client searches the Pillbox service.
//
// Each [Client.Search] call makes exactly one GET request; nothing is cached
// or retried. The client holds only read-only state after [New] and is safe
// for concurrent use.
type Client struct {
	http    *resty.Client
	apiKey  string
	baseURL string
	host    string
	logger  *log.Logger
	strict  bool
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at another endpoint, such as a mirror or a
// test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets the underlying transport. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = resty.NewWithClient(hc)
		}
	}
}

// WithLogger enables debug logging of outbound requests.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithStrict makes Search run [Pill.Validate] on every pill and fail the whole
// call on the first invalid one.
func WithStrict(strict bool) Option {
	return func(c *Client) { c.strict = strict }
}

// New creates a Client that sends apiKey with every request.
// An empty or malformed key yields an [errors.ErrCodeInvalidInput] error.
func New(apiKey string, opts ...Option) (*Client, error) {
	if err := errors.ValidateAPIKey(apiKey); err != nil {
		return nil, err
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := errors.ValidateURL(c.baseURL); err != nil {
		return nil, err
	}
	if u, err := url.Parse(c.baseURL); err == nil {
		c.host = u.Host
	}
	if c.http == nil {
		c.http = resty.New()
	}
	c.http.SetRetryCount(0).SetLogger(c.logger)
	return c, nil
}

// BaseURL returns the endpoint searches are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Search runs one query against the service.
//
// Color and shape are resolved before any I/O; an unknown value yields an
// [errors.ErrCodeUnrecognizedClassification] error. Transport failures and
// non-2xx statuses yield [errors.ErrCodeNetwork]. A body that is neither
// [NoRecordsFound] nor well-formed XML yields [errors.ErrCodeResponseParse]
// and no pills. Pills are returned in document order.
//
// Every call that reaches the network is reported to the registered
// [observability.SearchHooks].
func (c *Client) Search(ctx context.Context, params SearchParams) (result *Result, err error) {
	query, err := params.Values()
	if err != nil {
		return nil, err
	}
	query.Set(paramKey, c.apiKey)

	c.logger.Debug("pillbox search", "url", c.baseURL, "color", query.Get(paramColor), "shape", query.Get(paramShape),
		"ingredient", query.Get(paramIngredient))

	hooks := observability.Search()
	hooks.OnSearchStart(ctx, c.host)
	start := time.Now()
	status := 0
	defer func() {
		ev := observability.SearchEvent{Host: c.host, StatusCode: status, Duration: time.Since(start), Err: err}
		if result != nil {
			ev.Pills = result.Len()
			ev.NoRecords = result.NoRecords
		}
		hooks.OnSearchComplete(ctx, ev)
	}()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(c.baseURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", c.baseURL)
	}
	status = resp.StatusCode()
	if !resp.IsSuccess() {
		return nil, errors.New(errors.ErrCodeNetwork, "GET %s: status %d", c.baseURL, resp.StatusCode())
	}

	result, err = parseResponse(resp.Body())
	if err != nil {
		return nil, err
	}
	if c.strict {
		for i, p := range result.Pills {
			if err := p.Validate(); err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "pill %d", i)
			}
		}
	}
	c.logger.Debug("pillbox search done", "status", resp.StatusCode(), "pills", result.Len(), "no_records", result.NoRecords)
	return result, nil
}

type searchResponse struct {
	Pills []*Pill `xml:"pill"`
}

// parseResponse decodes a search response body.
func parseResponse(body []byte) (*Result, error) {
	if string(body) == NoRecordsFound {
		return &Result{NoRecords: true}, nil
	}

	var doc searchResponse
	if err := decodeDocument(xml.NewDecoder(bytes.NewReader(body)), &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeResponseParse, err, "decode search response")
	}
	if doc.Pills == nil {
		doc.Pills = []*Pill{}
	}
	return &Result{Pills: doc.Pills}, nil
}

// decodeDocument decodes exactly one root element into v. Only whitespace,
// comments, processing instructions and directives may surround the root.
func decodeDocument(d *xml.Decoder, v any) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return errors.New(errors.ErrCodeResponseParse, "no root element")
		}
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			if err := d.DecodeElement(v, &start); err != nil {
				return err
			}
			break
		}
		if err := checkProlog(tok); err != nil {
			return err
		}
	}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := checkProlog(tok); err != nil {
			return errors.New(errors.ErrCodeResponseParse, "junk after document element")
		}
	}
}

// checkProlog rejects tokens that may not appear outside the root element.
func checkProlog(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.CharData:
		if len(bytes.TrimSpace(t)) != 0 {
			return errors.New(errors.ErrCodeResponseParse, "text outside root element")
		}
	case xml.Comment, xml.ProcInst, xml.Directive:
	default:
		return errors.New(errors.ErrCodeResponseParse, "unexpected %T outside root element", tok)
	}
	return nil
}
