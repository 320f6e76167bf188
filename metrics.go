package client

import "context"

// MetricsDashboard returns aggregated processing metrics.
func (c *client) MetricsDashboard(ctx context.Context) (*DashboardResponse, error) {
	return get[DashboardResponse](c, c.newRequest(ctx, false), OperationMetrics, EndpointMetrics)
}
