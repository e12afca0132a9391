// Package platform is the outbound client for the upstream platform REST
// API. Every call forwards the dashboard user's opaque bearer token; the
// gateway never mints or validates credentials itself.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talentbridge/dashboard-gateway/config"
	apperrors "github.com/talentbridge/dashboard-gateway/internal/errors"
	"github.com/talentbridge/dashboard-gateway/internal/envelope"
	"github.com/talentbridge/dashboard-gateway/model"
)

const defaultTimeout = 15 * time.Second

// maxResponseBytes caps how much of an upstream response is read into
// memory. Collections are fetched whole, so the cap is generous.
const maxResponseBytes = 32 << 20

// Client fetches whole collections from the platform API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	collections map[string]*config.CollectionSettings
}

// NewClient creates a platform API client rooted at baseURL. The collections
// registry supplies upstream paths and envelope keys per collection.
func NewClient(baseURL string, collections map[string]*config.CollectionSettings) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		collections: collections,
	}
}

// FetchCollection GETs the entire collection and extracts the raw record
// array from whichever envelope shape the endpoint uses. An empty token
// short-circuits with the authentication-required condition before any
// network I/O. Failed calls are not retried; the dashboard exposes an
// explicit refresh instead.
func (c *Client) FetchCollection(ctx context.Context, token string, settings *config.CollectionSettings) ([]model.Record, error) {
	if token == "" {
		return nil, apperrors.ErrAuthRequired
	}
	if settings.Path == "" {
		return nil, apperrors.NewCollectionNotFoundError(settings.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+settings.Path, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError(settings.Path, 0, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(settings.Path, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.NewUpstreamError(settings.Path, resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(settings.Path, resp.StatusCode, errorMessage(body))
	}

	payload, err := envelope.Parse(body, settings.Name, settings.RecordsKey)
	if err != nil {
		return nil, err
	}
	return payload.Records, nil
}

// FetchEnrollmentSources fetches the sessions and classrooms collections
// with a fixed-order parallel wait: both requests run concurrently, but the
// results are always returned as (sessions, classrooms) so downstream
// aggregation order does not depend on which response arrives first.
func (c *Client) FetchEnrollmentSources(ctx context.Context, token string) ([]model.Record, []model.Record, error) {
	sessionSettings, ok := c.collections[config.CollectionSessions]
	if !ok {
		return nil, nil, apperrors.NewCollectionNotFoundError(config.CollectionSessions)
	}
	classroomSettings, ok := c.collections[config.CollectionClassrooms]
	if !ok {
		return nil, nil, apperrors.NewCollectionNotFoundError(config.CollectionClassrooms)
	}

	var sessions, classrooms []model.Record
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		sessions, err = c.FetchCollection(groupCtx, token, sessionSettings)
		return err
	})
	group.Go(func() error {
		var err error
		classrooms, err = c.FetchCollection(groupCtx, token, classroomSettings)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return sessions, classrooms, nil
}

// errorMessage extracts a human-readable message from an upstream error
// body, falling back to a generic string when the body is not the expected
// JSON shape.
func errorMessage(body []byte) string {
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err == nil {
		for _, key := range []string{"message", "error"} {
			if msg, ok := decoded[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	if len(body) > 0 {
		return fmt.Sprintf("unexpected response (%d bytes)", len(body))
	}
	return "something went wrong"
}
