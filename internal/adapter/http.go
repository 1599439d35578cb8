package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/utils"
	"github.com/MKhiriev/edu-offline/models"
	"github.com/go-resty/resty/v2"
)

const defaultHealthPath = "/api/health"

type httpRemoteAPI struct {
	client     *utils.HTTPClient
	healthPath string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteAPI constructs the resty implementation of [RemoteAPI].
// It normalises the base URL from cfg.BaseURL and applies cfg.RequestTimeout.
// When transport is not nil every request goes through it; the client wires
// the interception layer here so API reads are cached on the way back.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a URL.
func NewHTTPRemoteAPI(cfg config.ClientAdapter, transport http.RoundTripper, logger *logger.Logger) (RemoteAPI, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:   baseURL,
		Timeout:   cfg.RequestTimeout,
		Transport: transport,
		Headers:   map[string]string{"Accept": "application/json"},
	})

	healthPath := cfg.HealthPath
	if healthPath == "" {
		healthPath = defaultHealthPath
	}

	api := &httpRemoteAPI{client: client, healthPath: healthPath, logger: logger}
	api.SetToken(cfg.Token)
	return api, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteAPI]. The token is whitespace-trimmed.
func (h *httpRemoteAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteAPI].
func (h *httpRemoteAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetCourse implements [RemoteAPI]. GET /api/courses/{id} → {course, topics}.
func (h *httpRemoteAPI) GetCourse(ctx context.Context, courseID string) (models.CourseDetail, error) {
	var detail models.CourseDetail

	resp, err := h.authedRequest(ctx).
		SetPathParam("courseId", courseID).
		Get("/api/courses/{courseId}")
	if err != nil {
		return models.CourseDetail{}, mapTransportError("get course", err)
	}
	if err = checkResponse(resp); err != nil {
		return models.CourseDetail{}, err
	}
	if err = decode(resp, &detail); err != nil {
		return models.CourseDetail{}, err
	}

	return detail, nil
}

// GetTopics implements [RemoteAPI]. GET /api/courses/{id}/topics → {topics}.
func (h *httpRemoteAPI) GetTopics(ctx context.Context, courseID string) ([]models.Topic, error) {
	var body struct {
		Topics []models.Topic `json:"topics"`
	}

	resp, err := h.authedRequest(ctx).
		SetPathParam("courseId", courseID).
		Get("/api/courses/{courseId}/topics")
	if err != nil {
		return nil, mapTransportError("get topics", err)
	}
	if err = checkResponse(resp); err != nil {
		return nil, err
	}
	if err = decode(resp, &body); err != nil {
		return nil, err
	}

	return body.Topics, nil
}

// GetTopicContent implements [RemoteAPI].
// GET /api/courses/{id}/topics/{topicId}/content → arbitrary JSON.
func (h *httpRemoteAPI) GetTopicContent(ctx context.Context, courseID, topicID string) (json.RawMessage, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"courseId": courseID, "topicId": topicID}).
		Get("/api/courses/{courseId}/topics/{topicId}/content")
	if err != nil {
		return nil, mapTransportError("get topic content", err)
	}
	if err = checkResponse(resp); err != nil {
		return nil, err
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: topic %s content is not json", ErrDecodingResponse, topicID)
	}

	content := make(json.RawMessage, len(body))
	copy(content, body)
	return content, nil
}

// GetMaterial implements [RemoteAPI]. GET /api/materials/{id} → {material}.
func (h *httpRemoteAPI) GetMaterial(ctx context.Context, materialID string) (models.Material, error) {
	var body struct {
		Material models.Material `json:"material"`
	}

	resp, err := h.authedRequest(ctx).
		SetPathParam("materialId", materialID).
		Get("/api/materials/{materialId}")
	if err != nil {
		return models.Material{}, mapTransportError("get material", err)
	}
	if err = checkResponse(resp); err != nil {
		return models.Material{}, err
	}
	if err = decode(resp, &body); err != nil {
		return models.Material{}, err
	}

	return body.Material, nil
}

// GetCourseProgress implements [RemoteAPI].
// GET /api/progress/course/{courseId} → {progress: [...]}.
func (h *httpRemoteAPI) GetCourseProgress(ctx context.Context, courseID string) ([]models.ProgressRecord, error) {
	var body struct {
		Progress []models.ProgressRecord `json:"progress"`
	}

	resp, err := h.authedRequest(ctx).
		SetPathParam("courseId", courseID).
		Get("/api/progress/course/{courseId}")
	if err != nil {
		return nil, mapTransportError("get course progress", err)
	}
	if err = checkResponse(resp); err != nil {
		return nil, err
	}
	if err = decode(resp, &body); err != nil {
		return nil, err
	}

	return body.Progress, nil
}

// UpdateProgress implements [RemoteAPI]. PUT /api/progress/{topicId} →
// {progress}. A response without a topic id is completed from the request.
func (h *httpRemoteAPI) UpdateProgress(ctx context.Context, topicID string, update models.ProgressUpdate) (models.ProgressRecord, error) {
	var body struct {
		Progress models.ProgressRecord `json:"progress"`
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("topicId", topicID).
		SetBody(update).
		Put("/api/progress/{topicId}")
	if err != nil {
		return models.ProgressRecord{}, mapTransportError("update progress", err)
	}
	if err = checkResponse(resp); err != nil {
		return models.ProgressRecord{}, err
	}
	if err = decode(resp, &body); err != nil {
		return models.ProgressRecord{}, err
	}

	rec := body.Progress
	if rec.TopicID == "" {
		rec.TopicID = topicID
	}
	if rec.CourseID == "" {
		rec.CourseID = update.CourseID
	}
	rec.OfflineAt = nil
	return rec, nil
}

// GetRevisions implements [RemoteAPI]. GET /api/revisions → {revisions: [...]}.
func (h *httpRemoteAPI) GetRevisions(ctx context.Context) ([]models.Revision, error) {
	var body struct {
		Revisions []models.Revision `json:"revisions"`
	}

	resp, err := h.authedRequest(ctx).Get("/api/revisions")
	if err != nil {
		return nil, mapTransportError("get revisions", err)
	}
	if err = checkResponse(resp); err != nil {
		return nil, err
	}
	if err = decode(resp, &body); err != nil {
		return nil, err
	}

	return body.Revisions, nil
}

// Health implements [RemoteAPI] and connectivity.HealthChecker.
func (h *httpRemoteAPI) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(h.healthPath)
	if err != nil {
		return mapTransportError("health", err)
	}
	if noteResponse(resp) {
		return fmt.Errorf("%w: health answered from cache", ErrNetworkUnavailable)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteAPI) authedRequest(ctx context.Context) *resty.Request {
	return h.client.BearerRequest(ctx, h.Token())
}

// checkResponse maps error statuses and reports a cache fallback to the
// caller's [ResponseInfo].
func checkResponse(resp *resty.Response) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}
	noteResponse(resp)
	return nil
}

func decode(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w from %s: %w", ErrDecodingResponse, resp.Request.URL, err)
	}
	return nil
}
