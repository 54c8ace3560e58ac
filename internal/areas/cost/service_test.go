// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cost

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

type staticCredential struct{}

func (staticCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// captureTransport records the requests the pipeline sends and replays a
// canned response.
type captureTransport struct {
	status   int
	body     string
	requests []*http.Request
	bodies   [][]byte
}

func (c *captureTransport) Do(req *http.Request) (*http.Response, error) {
	c.requests = append(c.requests, req)

	var payload []byte
	if req.Body != nil {
		payload, _ = io.ReadAll(req.Body)
	}
	c.bodies = append(c.bodies, payload)

	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(c.body)),
		Request:    req,
	}, nil
}

func newTestService(t *testing.T, transport *captureTransport) *service {
	t.Helper()

	provider := azure.NewClientProvider(log.New(io.Discard), "azmcp/test",
		azure.WithCredentialFactory(func(tenantID string) (azcore.TokenCredential, error) {
			return staticCredential{}, nil
		}),
		azure.WithTransport(transport),
	)

	svc := NewService(provider).(*service)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

const resultBody = `{
	"name": "query-1",
	"type": "Microsoft.CostManagement/query",
	"properties": {
		"columns": [{"name": "Cost", "type": "Number"}, {"name": "UsageDate", "type": "Number"}],
		"rows": [[42.5, 20260828]]
	}
}`

func TestQueryCosts(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the query and decodes the result", func(t *testing.T) {
		transport := &captureTransport{body: resultBody}
		svc := newTestService(t, transport)

		result, err := svc.QueryCosts(ctx, "sub-1", QueryParams{}, "", nil)
		require.NoError(t, err)
		require.Equal(t, "query-1", result.Name)
		require.Len(t, result.Properties.Rows, 1)

		require.Len(t, transport.requests, 1)
		req := transport.requests[0]
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/subscriptions/sub-1/providers/Microsoft.CostManagement/query", req.URL.Path)
		require.Equal(t, "2025-03-01", req.URL.Query().Get("api-version"))
		require.Equal(t, "5000", req.URL.Query().Get("top"))
		require.Equal(t, "Bearer token", req.Header.Get("Authorization"))

		var body QueryRequest
		require.NoError(t, json.Unmarshal(transport.bodies[0], &body))
		require.Equal(t, ExportTypeActualCost, body.Type)
		require.Equal(t, "Custom", body.Timeframe)
		require.Equal(t, GranularityDaily, body.Dataset.Granularity)
		require.Equal(t, Aggregation{Name: "Cost", Function: "Sum"}, body.Dataset.Aggregation["Cost"])

		require.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), body.TimePeriod.To)
		require.Equal(t, time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC), body.TimePeriod.From)
	})

	t.Run("honors explicit parameters", func(t *testing.T) {
		transport := &captureTransport{body: resultBody}
		svc := newTestService(t, transport)

		from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.QueryCosts(ctx, "sub-1", QueryParams{
			Type:                ExportTypeAmortizedCost,
			Granularity:         GranularityNone,
			From:                &from,
			To:                  &to,
			GroupBy:             []string{"ResourceGroup"},
			AggregationCostType: "PreTaxCost",
		}, "", nil)
		require.NoError(t, err)

		var body QueryRequest
		require.NoError(t, json.Unmarshal(transport.bodies[0], &body))
		require.Equal(t, ExportTypeAmortizedCost, body.Type)
		require.Equal(t, GranularityNone, body.Dataset.Granularity)
		require.Equal(t, []Grouping{{Type: "Dimension", Name: "ResourceGroup"}}, body.Dataset.Grouping)
		require.Equal(t, "PreTaxCost", body.Dataset.Aggregation["Cost"].Name)
		require.Equal(t, from, body.TimePeriod.From)
		require.Equal(t, to, body.TimePeriod.To)
	})

	t.Run("non-200 surfaces as a response error", func(t *testing.T) {
		transport := &captureTransport{status: http.StatusTooManyRequests, body: `{"error":{"code":"429"}}`}
		svc := newTestService(t, transport)

		_, err := svc.QueryCosts(ctx, "sub-1", QueryParams{}, "", nil)
		require.Error(t, err)

		var respErr *azcore.ResponseError
		require.True(t, errors.As(err, &respErr))
		require.Equal(t, http.StatusTooManyRequests, respErr.StatusCode)
	})
}

func TestQueryForecast(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the forecast request", func(t *testing.T) {
		transport := &captureTransport{body: resultBody}
		svc := newTestService(t, transport)

		result, err := svc.QueryForecast(ctx, "sub-1", ForecastParams{
			AggregationName:         "PreTaxCost",
			IncludeActualCost:       true,
			IncludeFreshPartialCost: true,
		}, "", nil)
		require.NoError(t, err)
		require.Equal(t, "query-1", result.Name)

		req := transport.requests[0]
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/subscriptions/sub-1/providers/Microsoft.CostManagement/forecast", req.URL.Path)
		require.Equal(t, "2025-03-01", req.URL.Query().Get("api-version"))
		require.Empty(t, req.URL.Query().Get("top"))

		var body ForecastRequest
		require.NoError(t, json.Unmarshal(transport.bodies[0], &body))
		require.Equal(t, "PreTaxCost", body.Dataset.Aggregation["Cost"].Name)
		require.Equal(t, "Sum", body.Dataset.Aggregation["Cost"].Function)
		require.True(t, body.IncludeActualCost)
		require.True(t, body.IncludeFreshPartialCost)
	})

	t.Run("pipeline is reused across calls", func(t *testing.T) {
		transport := &captureTransport{body: resultBody}
		svc := newTestService(t, transport)

		_, err := svc.QueryCosts(ctx, "sub-1", QueryParams{}, "", nil)
		require.NoError(t, err)
		_, err = svc.QueryForecast(ctx, "sub-1", ForecastParams{}, "", nil)
		require.NoError(t, err)

		require.Len(t, transport.requests, 2)
	})
}
