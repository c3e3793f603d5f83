package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// GetChartRequest represents a request for the latest rendered telemetry chart
type GetChartRequest struct{}

// GetChartResponse carries the PNG bytes of the latest chart
type GetChartResponse struct {
	ContentType  string `header:"Content-Type"`
	LastModified string `header:"Last-Modified"`
	Body         []byte
}

// ListPDRRequest represents a request to extract PDR tables from receiver logs
type ListPDRRequest struct {
	Glob string `query:"glob" doc:"File name pattern matched inside the receiver log directory"`
}

// ListPDRResponseBody is the body of the PDR listing response
type ListPDRResponseBody struct {
	Tables []PDRTable `json:"tables" doc:"One table per receiver log"`
}

// ListPDRResponse represents the extracted PDR tables
type ListPDRResponse struct {
	Body ListPDRResponseBody
}
