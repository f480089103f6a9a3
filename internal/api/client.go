package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-portfolio/catalog"
	"github.com/goliatone/go-portfolio/editor"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const (
	apiGroup        = "api"
	routeSite       = "site"
	routeCollection = "collection"
	routeItem       = "item"

	// methodOverrideField marks a multipart POST as an update. Some
	// intermediaries drop body-bearing PUT requests with multipart
	// payloads, so updates with attachments ride the create route with
	// this marker instead.
	methodOverrideField = "_method"
)

var (
	ErrBaseURLRequired    = errors.New("api: base URL is required")
	ErrDeleteNotConfirmed = errors.New("api: delete not confirmed")
	ErrEntityIDRequired   = errors.New("api: entity id required")
	ErrSessionRequired    = errors.New("api: session is required")
)

// ConfirmFunc asks the user to confirm a destructive action. The request
// is only issued when it returns true.
type ConfirmFunc func() bool

// Config captures the client's collaborators.
type Config struct {
	// BaseURL is the backend origin, e.g. http://api.example.com.
	BaseURL string
	// AssetBase prefixes relative image paths; defaults to BaseURL.
	AssetBase  string
	HTTPClient *http.Client
	Logger     interfaces.Logger
}

// Client is the persistence adapter for the portfolio backend. It owns
// wire encoding (localized pairs as JSON strings, booleans as "1"/"0"),
// the create-versus-update decision, and the multipart method-override
// convention.
type Client struct {
	routes    *urlkit.RouteManager
	assetBase string
	http      *http.Client
	logger    interfaces.Logger
}

// New constructs a client for the configured backend.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrBaseURLRequired
	}

	assetBase := strings.TrimRight(strings.TrimSpace(cfg.AssetBase), "/")
	if assetBase == "" {
		assetBase = base
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	routes := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    apiGroup,
				BaseURL: base,
				Paths: map[string]string{
					routeSite:       "/api/portfolio-data",
					routeCollection: "/api/:kind",
					routeItem:       "/api/:kind/:id",
				},
			},
		},
	})

	return &Client{
		routes:    routes,
		assetBase: assetBase,
		http:      httpClient,
		logger:    logger,
	}, nil
}

func (c *Client) endpoint(route string, params map[string]string) (string, error) {
	builder := c.routes.Group(apiGroup).Builder(route)
	for key, value := range params {
		builder.WithParam(key, value)
	}
	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("api: build %s url: %w", route, err)
	}
	return url, nil
}

// ResolveAsset turns a backend-relative image path into a loadable URL.
func (c *Client) ResolveAsset(path string) string {
	return catalog.ResolveAssetURL(path, c.assetBase)
}

// FetchSite retrieves the aggregate public content payload. Localized
// fields are normalized during decode regardless of their stored shape.
func (c *Client) FetchSite(ctx context.Context) (*catalog.Site, error) {
	url, err := c.endpoint(routeSite, nil)
	if err != nil {
		return nil, err
	}

	var site catalog.Site
	if err := c.getJSON(ctx, url, &site); err != nil {
		c.logger.Error("site fetch failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "api: fetch site content").
			WithTextCode("SITE_FETCH_FAILED")
	}
	return &site, nil
}

// List retrieves the flat entity list for one kind, decoded into the
// caller's record type.
func List[T any](ctx context.Context, c *Client, kind catalog.Kind) ([]T, error) {
	if _, err := catalog.ParseKind(kind.Segment()); err != nil {
		return nil, err
	}
	url, err := c.endpoint(routeCollection, map[string]string{"kind": kind.Segment()})
	if err != nil {
		return nil, err
	}

	var items []T
	if err := c.getJSON(ctx, url, &items); err != nil {
		c.logger.Error("list fetch failed", "kind", kind.String(), "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "api: fetch entity list").
			WithTextCode("LIST_FETCH_FAILED")
	}
	return items, nil
}

// Get retrieves one entity as its raw wire map, ready to seed an edit
// session.
func (c *Client) Get(ctx context.Context, kind catalog.Kind, id int64) (map[string]any, error) {
	if id == 0 {
		return nil, ErrEntityIDRequired
	}
	url, err := c.endpoint(routeItem, map[string]string{
		"kind": kind.Segment(),
		"id":   strconv.FormatInt(id, 10),
	})
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := c.getJSON(ctx, url, &record); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "api: fetch entity").
			WithTextCode("ENTITY_FETCH_FAILED")
	}
	return record, nil
}

// Save submits the session's draft: create when the draft has no
// identity, update otherwise. The session's save gate is held for the
// duration, the canonical record is committed back into the draft on
// success, and the draft is left untouched on failure so the user can
// retry.
func (c *Client) Save(ctx context.Context, session *editor.Session) (map[string]any, error) {
	if session == nil {
		return nil, ErrSessionRequired
	}
	if err := session.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "api: draft is missing required fields").
			WithTextCode("DRAFT_INVALID")
	}
	if err := session.BeginSave(); err != nil {
		return nil, err
	}

	canonical, err := c.submit(ctx, session)
	session.FinishSave(canonical, err)
	if err != nil {
		c.logger.Error("save failed",
			"kind", session.Kind().String(),
			"entity_id", session.EntityID(),
			"error", err,
		)
		return nil, err
	}

	c.logger.Info("entity saved",
		"kind", session.Kind().String(),
		"entity_id", canonicalID(canonical),
	)
	return canonical, nil
}

func (c *Client) submit(ctx context.Context, session *editor.Session) (map[string]any, error) {
	payload, err := encodePayload(session)
	if err != nil {
		return nil, err
	}
	if session.Kind() == catalog.KindProject {
		c.applyProjectSlug(session, payload)
	}

	if session.HasAttachments() {
		return c.submitMultipart(ctx, session, payload)
	}
	return c.submitJSON(ctx, session, payload)
}

func (c *Client) submitJSON(ctx context.Context, session *editor.Session, payload map[string]string) (map[string]any, error) {
	method := http.MethodPost
	route := routeCollection
	params := map[string]string{"kind": session.Kind().Segment()}
	if !session.IsNew() {
		method = http.MethodPut
		route = routeItem
		params["id"] = strconv.FormatInt(session.EntityID(), 10)
	}

	url, err := c.endpoint(route, params)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("api: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "api: build save request").
			WithTextCode("SAVE_REQUEST_FAILED")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doSave(req)
}

func (c *Client) submitMultipart(ctx context.Context, session *editor.Session, payload map[string]string) (map[string]any, error) {
	// Attachments force multipart, and multipart updates must ride the
	// create route with the override marker.
	url, err := c.endpoint(routeCollection, map[string]string{"kind": session.Kind().Segment()})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if !session.IsNew() {
		payload[methodOverrideField] = http.MethodPut
		payload["id"] = strconv.FormatInt(session.EntityID(), 10)
	}
	for name, value := range payload {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("api: write form field %q: %w", name, err)
		}
	}
	for _, att := range session.Attachments() {
		part, err := writer.CreateFormFile(att.Field, att.Filename)
		if err != nil {
			return nil, fmt.Errorf("api: attach %q: %w", att.Filename, err)
		}
		if _, err := part.Write(att.Content); err != nil {
			return nil, fmt.Errorf("api: attach %q: %w", att.Filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("api: finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "api: build save request").
			WithTextCode("SAVE_REQUEST_FAILED")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.doSave(req)
}

func (c *Client) doSave(req *http.Request) (map[string]any, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "api: save request failed").
			WithTextCode("SAVE_TRANSPORT_FAILED")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var canonical map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&canonical); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "api: decode save response").
			WithTextCode("SAVE_DECODE_FAILED")
	}
	return canonical, nil
}

// Delete removes one entity. The confirm callback gates the request: no
// traffic is issued until the user confirmed. On success the caller
// must drop the entity from any in-memory listing immediately.
func (c *Client) Delete(ctx context.Context, kind catalog.Kind, id int64, confirm ConfirmFunc) error {
	if id == 0 {
		return ErrEntityIDRequired
	}
	if confirm == nil || !confirm() {
		return ErrDeleteNotConfirmed
	}

	url, err := c.endpoint(routeItem, map[string]string{
		"kind": kind.Segment(),
		"id":   strconv.FormatInt(id, 10),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "api: build delete request").
			WithTextCode("DELETE_REQUEST_FAILED")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("delete failed", "kind", kind.String(), "entity_id", id, "error", err)
		return goerrors.Wrap(err, goerrors.CategoryExternal, "api: delete request failed").
			WithTextCode("DELETE_TRANSPORT_FAILED")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	c.logger.Info("entity deleted", "kind", kind.String(), "entity_id", id)
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// checkStatus converts an HTTP error status into a categorized error
// carrying the server's message so it can be shown to the user.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	msg := serverMessage(resp)
	category := goerrors.CategoryBadInput
	if resp.StatusCode >= 500 {
		category = goerrors.CategoryExternal
	}
	return goerrors.Wrap(errors.New(msg), category, "api: backend rejected request").
		WithTextCode(fmt.Sprintf("HTTP_%d", resp.StatusCode))
}

func serverMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		var envelope struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Message != "" {
			return envelope.Message
		}
	}
	return resp.Status
}

func canonicalID(record map[string]any) int64 {
	if record == nil {
		return 0
	}
	if v, ok := record["id"].(float64); ok {
		return int64(v)
	}
	return 0
}
