package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultRequestTimeout = 45 * time.Second
	defaultRetryInterval  = 500 * time.Millisecond
	listPageLimit         = "200"
	insightsPageLimit     = "365"
)

type Client interface {
	GetCampaignsByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
	GetAdSetsByCampaignID(ctx context.Context, campaignID string) ([]metadomain.AdSet, error)
	GetAdsByAdSetID(ctx context.Context, adSetID string) ([]metadomain.Ad, error)
	GetInsights(ctx context.Context, entityID string, params url.Values) ([]metadomain.InsightRow, error)
	GetAdAccount(ctx context.Context, accountID string) (*metadomain.AdAccount, error)
}

type MetaClient struct {
	baseURL       string
	accessToken   string
	httpClient    *http.Client
	maxRetries    uint64
	retryInterval time.Duration
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.Meta.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	maxRetries := cfg.Meta.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &MetaClient{
		baseURL:       cfg.Meta.URL,
		accessToken:   cfg.Meta.AccessToken,
		httpClient:    &http.Client{Timeout: timeout},
		maxRetries:    uint64(maxRetries),
		retryInterval: defaultRetryInterval,
	}
}

func (c *MetaClient) buildURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.accessToken)
	return fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())
}

// doGet faz um GET com novas tentativas para limite de chamadas e erros 5xx.
// Qualquer falha volta como *domain.NetworkFailure.
func (c *MetaClient) doGet(ctx context.Context, operation, entityID, rawURL string) ([]byte, error) {
	var body []byte
	attempts := 0

	request := func() error {
		attempts++

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "erro ao criar a requisição"))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return errors.Wrap(err, "erro ao fazer a requisição")
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "erro ao ler a resposta")
		}

		if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
			body = payload
			return nil
		}

		return c.handleErrorResponse(operation, entityID, resp.StatusCode, payload)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"entity_id": entityID,
			"attempt":   attempts,
			"wait":      wait.String(),
		}).WithError(err).Warn("meta: retrying request")
	}

	err := backoff.RetryNotify(request, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx), notify)
	if err != nil {
		var failure *domain.NetworkFailure
		if errors.As(err, &failure) {
			return nil, failure
		}
		return nil, &domain.NetworkFailure{Operation: operation, EntityID: entityID, Err: err}
	}

	return body, nil
}

// handleErrorResponse converte o corpo de erro da Graph API; só limite de chamadas e 5xx são repetidos
func (c *MetaClient) handleErrorResponse(operation, entityID string, statusCode int, payload []byte) error {
	failure := &domain.NetworkFailure{
		Operation:  operation,
		EntityID:   entityID,
		StatusCode: statusCode,
	}

	var errResp metadomain.ErrorResponse
	if err := json.Unmarshal(payload, &errResp); err != nil || errResp.Error.Message == "" {
		failure.Err = errors.Errorf("resposta inesperada: %s", http.StatusText(statusCode))
	} else {
		failure.Err = errors.New(errResp.Error.String())
	}

	if errResp.IsTokenExpired() {
		logrus.WithField("operation", operation).Error("meta: access token expired")
	}

	if statusCode >= http.StatusInternalServerError || errResp.IsRateLimited() {
		return failure
	}
	return backoff.Permanent(failure)
}

// getAllPages segue paging.next até a última página
func getAllPages[T any](ctx context.Context, c *MetaClient, operation, entityID, firstURL string) ([]T, error) {
	var items []T

	next := firstURL
	for next != "" {
		body, err := c.doGet(ctx, operation, entityID, next)
		if err != nil {
			return nil, err
		}

		var page metadomain.Page[T]
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, &domain.NetworkFailure{
				Operation: operation,
				EntityID:  entityID,
				Err:       errors.Wrap(err, "erro ao decodificar JSON"),
			}
		}

		items = append(items, page.Data...)
		next = page.Paging.Next
	}

	return items, nil
}
