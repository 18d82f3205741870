package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/common"
	"github.com/dmitrijs2005/friendstories/internal/netx"
	json "github.com/goccy/go-json"
)

// HTTPClient implements Client over the REST API. Each call is a single
// attempt bounded by the configured timeout.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type usersEnvelope struct {
	Data []models.UserDTO `json:"data"`
}

type storyEnvelope struct {
	Data *models.StoryDTO `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *HTTPClient) GetStories(ctx context.Context, page, limit int) (*models.FeedPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out models.FeedPage
	if err := c.do(ctx, http.MethodGet, "/api/stories?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("get stories page %d: %w", page, err)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("get stories page %d: %w: missing data", page, common.ErrDecoding)
	}
	return &out, nil
}

func (c *HTTPClient) GetUsers(ctx context.Context) ([]models.UserDTO, error) {
	var out usersEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("get users: %w: missing data", common.ErrDecoding)
	}
	return out.Data, nil
}

func (c *HTTPClient) CreateStory(ctx context.Context, req *models.CreateStoryRequest) (*models.StoryDTO, error) {
	var out storyEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/stories", req, &out); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("create story: %w: missing data", common.ErrDecoding)
	}
	return out.Data, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	return mapError(netx.DoJSON(ctx, c.http, method, c.baseURL+path, in, out))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if errors.As(err, &se) {
		msg := se.Status
		var eb errorBody
		if json.Unmarshal(se.Body, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		switch se.Code {
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", common.ErrorNotFound, msg)
		default:
			return fmt.Errorf("%w: %s", common.ErrTransport, msg)
		}
	}

	var de *netx.DecodeError
	if errors.As(err, &de) {
		return fmt.Errorf("%w: %w", common.ErrDecoding, de.Err)
	}

	return fmt.Errorf("%w: %w", common.ErrTransport, err)
}
