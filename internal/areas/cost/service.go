// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cost exposes Azure Cost Management queries as commands. The
// Cost Management query and forecast APIs have no Go SDK module, so the
// service speaks to the REST endpoint directly over an azcore pipeline
// assembled from the shared client provider.
package cost

import (
	"context"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/options"
)

const (
	managementEndpoint = "https://management.azure.com"
	managementScope    = managementEndpoint + "/.default"
	apiVersion         = "2025-03-01"

	// The query endpoint caps a single page at 5000 rows.
	queryPageSize = "5000"

	// Without explicit dates the last 30 days of data are queried.
	defaultLookbackDays = 30
)

// QueryParams carries the caller-supplied shape of a cost query. Nil or
// empty fields fall back to the documented defaults.
type QueryParams struct {
	Type                string
	Granularity         string
	From                *time.Time
	To                  *time.Time
	GroupBy             []string
	AggregationCostType string
}

// ForecastParams carries the caller-supplied shape of a forecast query.
type ForecastParams struct {
	Type                    string
	Granularity             string
	From                    *time.Time
	To                      *time.Time
	AggregationName         string
	AggregationFunction     string
	IncludeActualCost       bool
	IncludeFreshPartialCost bool
}

// Service is the Cost Management surface the commands invoke.
type Service interface {
	QueryCosts(ctx context.Context, subscription string, params QueryParams, tenant string, retry *options.RetryPolicy) (*QueryResult, error)
	QueryForecast(ctx context.Context, subscription string, params ForecastParams, tenant string, retry *options.RetryPolicy) (*QueryResult, error)
}

type service struct {
	provider  *azure.ClientProvider
	pipelines azure.ClientCache[runtime.Pipeline]

	// now is stubbed in tests to pin the default time period.
	now func() time.Time
}

// NewService creates the Cost Management service over the shared client
// provider.
func NewService(provider *azure.ClientProvider) Service {
	return &service{provider: provider, now: time.Now}
}

// pipeline returns a cached authenticated pipeline for the tenant and
// retry policy. Subscription scoping happens per request path, so it is
// not part of the key.
func (s *service) pipeline(ctx context.Context, tenant string, retry *options.RetryPolicy) (runtime.Pipeline, error) {
	key, err := s.provider.ClientKey(ctx, "", tenant, retry)
	if err != nil {
		return runtime.Pipeline{}, err
	}

	return azure.GetOrCreateClient(&s.pipelines, key, func() (runtime.Pipeline, error) {
		cred, err := s.provider.Credential(ctx, tenant)
		if err != nil {
			return runtime.Pipeline{}, err
		}

		clientOptions := s.provider.ArmClientOptions(retry)
		return runtime.NewPipeline("azmcp-cost", "1.0.0", runtime.PipelineOptions{
			PerRetry: []policy.Policy{
				runtime.NewBearerTokenPolicy(cred, []string{managementScope}, nil),
			},
		}, &clientOptions.ClientOptions), nil
	})
}

func (s *service) QueryCosts(ctx context.Context, subscription string, params QueryParams, tenant string, retry *options.RetryPolicy) (*QueryResult, error) {
	pipeline, err := s.pipeline(ctx, tenant, retry)
	if err != nil {
		return nil, err
	}

	body := s.buildQueryRequest(params)

	req, err := runtime.NewRequest(ctx, http.MethodPost,
		runtime.JoinPaths(managementEndpoint, "subscriptions", subscription, "providers", "Microsoft.CostManagement", "query"))
	if err != nil {
		return nil, err
	}

	values := req.Raw().URL.Query()
	values.Set("api-version", apiVersion)
	values.Set("top", queryPageSize)
	req.Raw().URL.RawQuery = values.Encode()

	if err := runtime.MarshalAsJSON(req, body); err != nil {
		return nil, err
	}

	return doQuery(pipeline, req)
}

func (s *service) QueryForecast(ctx context.Context, subscription string, params ForecastParams, tenant string, retry *options.RetryPolicy) (*QueryResult, error) {
	pipeline, err := s.pipeline(ctx, tenant, retry)
	if err != nil {
		return nil, err
	}

	body := s.buildForecastRequest(params)

	req, err := runtime.NewRequest(ctx, http.MethodPost,
		runtime.JoinPaths(managementEndpoint, "subscriptions", subscription, "providers", "Microsoft.CostManagement", "forecast"))
	if err != nil {
		return nil, err
	}

	values := req.Raw().URL.Query()
	values.Set("api-version", apiVersion)
	req.Raw().URL.RawQuery = values.Encode()

	if err := runtime.MarshalAsJSON(req, body); err != nil {
		return nil, err
	}

	return doQuery(pipeline, req)
}

func doQuery(pipeline runtime.Pipeline, req *policy.Request) (*QueryResult, error) {
	resp, err := pipeline.Do(req)
	if err != nil {
		return nil, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return nil, runtime.NewResponseError(resp)
	}

	var result QueryResult
	if err := runtime.UnmarshalAsJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// timePeriod resolves the explicit dates onto the default window: the
// last 30 whole days ending today.
func (s *service) timePeriod(from *time.Time, to *time.Time) *TimePeriod {
	end := s.now().UTC().Truncate(24 * time.Hour)
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -defaultLookbackDays)
	if from != nil {
		start = *from
	}
	return &TimePeriod{From: start, To: end}
}

func (s *service) buildQueryRequest(params QueryParams) QueryRequest {
	exportType := params.Type
	if exportType == "" {
		exportType = ExportTypeActualCost
	}
	granularity := params.Granularity
	if granularity == "" {
		granularity = GranularityDaily
	}
	costType := params.AggregationCostType
	if costType == "" {
		costType = "Cost"
	}

	var grouping []Grouping
	for _, dimension := range params.GroupBy {
		grouping = append(grouping, Grouping{Type: "Dimension", Name: dimension})
	}

	return QueryRequest{
		Type:      exportType,
		Timeframe: "Custom",
		Dataset: &Dataset{
			Granularity: granularity,
			Aggregation: map[string]Aggregation{
				"Cost": {Name: costType, Function: "Sum"},
			},
			Grouping: grouping,
		},
		TimePeriod: s.timePeriod(params.From, params.To),
	}
}

func (s *service) buildForecastRequest(params ForecastParams) ForecastRequest {
	exportType := params.Type
	if exportType == "" {
		exportType = ExportTypeActualCost
	}
	granularity := params.Granularity
	if granularity == "" {
		granularity = GranularityDaily
	}
	name := params.AggregationName
	if name == "" {
		name = "Cost"
	}
	function := params.AggregationFunction
	if function == "" {
		function = "Sum"
	}

	return ForecastRequest{
		QueryRequest: QueryRequest{
			Type:      exportType,
			Timeframe: "Custom",
			Dataset: &Dataset{
				Granularity: granularity,
				Aggregation: map[string]Aggregation{
					"Cost": {Name: name, Function: function},
				},
			},
			TimePeriod: s.timePeriod(params.From, params.To),
		},
		IncludeActualCost:       params.IncludeActualCost,
		IncludeFreshPartialCost: params.IncludeFreshPartialCost,
	}
}
