package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// DefaultListKeys are the response fields that may hold a story list, tried
// in order.
var DefaultListKeys = []string{"listStory", "stories"}

const maxResponseSize = 4 << 20

// HTTPClient implements Gateway over the REST story API.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	tokens   TokenProvider
	listKeys []string
	guest    bool
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

func WithTokenProvider(p TokenProvider) Option {
	return func(h *HTTPClient) { h.tokens = p }
}

// WithListKeys overrides DefaultListKeys. An empty slice keeps the default.
func WithListKeys(keys []string) Option {
	return func(h *HTTPClient) {
		if len(keys) > 0 {
			h.listKeys = append([]string(nil), keys...)
		}
	}
}

// WithGuestSubmissions lets signed-out users post to the guest endpoint.
func WithGuestSubmissions(enabled bool) Option {
	return func(h *HTTPClient) { h.guest = enabled }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: unsupported scheme", baseURL)
	}

	c := &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		listKeys: DefaultListKeys,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close drops idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) SubmitStory(ctx context.Context, draft models.StoryDraft) (SubmitResponse, error) {
	token, err := c.token(ctx)
	guest := false
	if err != nil {
		if !c.guest || !errors.Is(err, common.ErrNoToken) {
			return SubmitResponse{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		guest = true
	}

	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return SubmitResponse{}, fmt.Errorf("%w: encode draft: %w", ErrValidation, err)
	}

	path := "/stories"
	if guest {
		path = "/stories/guest"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return SubmitResponse{}, err
	}
	req.Header.Set("Content-Type", contentType)
	if !guest {
		setBearer(req, token)
	}

	var env envelope
	if err := c.do(req, &env); err != nil {
		return SubmitResponse{}, err
	}
	return SubmitResponse{Message: env.Message, Guest: guest}, nil
}

func (c *HTTPClient) FetchStory(ctx context.Context, id string) (models.Story, error) {
	req, err := c.authorized(ctx, http.MethodGet, "/stories/"+url.PathEscape(id), nil)
	if err != nil {
		return models.Story{}, err
	}

	var out struct {
		Story *models.Story `json:"story"`
	}
	if err := c.do(req, &out); err != nil {
		return models.Story{}, err
	}
	if out.Story == nil {
		return models.Story{}, fmt.Errorf("%w: response has no story", ErrServer)
	}
	return *out.Story, nil
}

func (c *HTTPClient) ListStories(ctx context.Context, q ListQuery) ([]models.Story, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		params.Set("size", strconv.Itoa(q.Size))
	}
	if q.WithLocation {
		params.Set("location", "1")
	}
	path := "/stories"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	req, err := c.authorized(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}
	return normalizeList(raw, c.listKeys)
}

// normalizeList picks the first candidate key present in the response. A
// response without any of them is an empty list.
func normalizeList(raw map[string]json.RawMessage, keys []string) ([]models.Story, error) {
	for _, k := range keys {
		data, ok := raw[k]
		if !ok || string(data) == "null" {
			continue
		}
		var list []models.Story
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", ErrServer, k, err)
		}
		return list, nil
	}
	return []models.Story{}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	req, err := c.jsonRequest(ctx, "/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return LoginResult{}, err
	}

	var out struct {
		LoginResult *struct {
			UserID string `json:"userId"`
			Name   string `json:"name"`
			Token  string `json:"token"`
		} `json:"loginResult"`
	}
	if err := c.do(req, &out); err != nil {
		return LoginResult{}, err
	}
	if out.LoginResult == nil || out.LoginResult.Token == "" {
		return LoginResult{}, fmt.Errorf("%w: response has no token", ErrServer)
	}
	return LoginResult{
		UserID: out.LoginResult.UserID,
		Name:   out.LoginResult.Name,
		Token:  out.LoginResult.Token,
	}, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	req, err := c.jsonRequest(ctx, "/register", map[string]string{"name": name, "email": email, "password": password})
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Ping treats any HTTP answer, even an error status, as success.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp.Body.Close()
}

func (c *HTTPClient) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", common.ErrNoToken
	}
	return c.tokens.Token(ctx)
}

func (c *HTTPClient) authorized(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	setBearer(req, token)
	return req, nil
}

func (c *HTTPClient) jsonRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func setBearer(req *http.Request, token string) {
	req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
}

// do sends req and decodes a 2xx body into out (when out is not nil).
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &ResponseError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrServer, err)
	}
	return nil
}

func encodeDraft(d models.StoryDraft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("description", d.Description); err != nil {
		return nil, "", err
	}
	if d.Photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s%s"`, d.ID, d.Photo.Extension()))
		h.Set("Content-Type", d.Photo.MimeType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(d.Photo.Data); err != nil {
			return nil, "", err
		}
	}
	if d.Lat != nil {
		if err := w.WriteField("lat", strconv.FormatFloat(*d.Lat, 'f', -1, 64)); err != nil {
			return nil, "", err
		}
	}
	if d.Lon != nil {
		if err := w.WriteField("lon", strconv.FormatFloat(*d.Lon, 'f', -1, 64)); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
