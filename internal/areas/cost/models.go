// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cost

import "time"

// Export types accepted by --type.
const (
	ExportTypeUsage         = "Usage"
	ExportTypeActualCost    = "ActualCost"
	ExportTypeAmortizedCost = "AmortizedCost"
)

// Granularities accepted by --granularity.
const (
	GranularityDaily = "Daily"
	GranularityNone  = "None"
)

// QueryRequest is the body POSTed to the Cost Management query endpoint.
type QueryRequest struct {
	Type       string      `json:"type"`
	Timeframe  string      `json:"timeframe"`
	Dataset    *Dataset    `json:"dataset,omitempty"`
	TimePeriod *TimePeriod `json:"timePeriod,omitempty"`
}

// ForecastRequest extends the query body with forecast-only switches.
type ForecastRequest struct {
	QueryRequest
	IncludeActualCost       bool `json:"includeActualCost"`
	IncludeFreshPartialCost bool `json:"includeFreshPartialCost"`
}

// Dataset describes the data present in the query.
type Dataset struct {
	Granularity string                 `json:"granularity,omitempty"`
	Aggregation map[string]Aggregation `json:"aggregation,omitempty"`
	Grouping    []Grouping             `json:"grouping,omitempty"`
}

// Aggregation is one aggregation expression of the query.
type Aggregation struct {
	Function string `json:"function"`
	Name     string `json:"name"`
}

// Grouping is one group-by expression of the query.
type Grouping struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TimePeriod bounds the data pulled by the query.
type TimePeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// QueryResult is the service's response: columns listed under groupings
// and aggregation plus the row data.
type QueryResult struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name,omitempty"`
	Type       string            `json:"type,omitempty"`
	ETag       string            `json:"eTag,omitempty"`
	Location   string            `json:"location,omitempty"`
	SKU        string            `json:"sku,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
	Properties *ResultProperties `json:"properties,omitempty"`
}

// ResultProperties holds the columns and rows of a query result.
type ResultProperties struct {
	NextLink string   `json:"nextLink,omitempty"`
	Columns  []Column `json:"columns,omitempty"`
	Rows     [][]any  `json:"rows,omitempty"`
}

// Column names and types one result column.
type Column struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}
