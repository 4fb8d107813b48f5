package iothub

import (
	"context"
	"net/http"
	"net/url"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

// JobsClient schedules and tracks twin update and device method jobs.
type JobsClient struct {
	client *Client
}

func jobPath(jobID string) string {
	return "/jobs/v2/" + url.PathEscape(jobID)
}

// Create schedules a job. The request must carry a job id; the service
// rejects duplicates.
func (c *JobsClient) Create(ctx context.Context, request *models.JobRequest) (*models.JobResponse, error) {
	if request == nil || request.JobID == "" {
		return nil, ErrMissingJobID
	}

	var response models.JobResponse

	_, err := c.client.do(ctx, http.MethodPut, jobPath(request.JobID), nil, nil, request, &response)

	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Get reads the current state of a job.
func (c *JobsClient) Get(ctx context.Context, jobID string) (*models.JobResponse, error) {
	if jobID == "" {
		return nil, ErrMissingJobID
	}

	var response models.JobResponse

	_, err := c.client.do(ctx, http.MethodGet, jobPath(jobID), nil, nil, nil, &response)

	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Cancel stops a scheduled or running job.
func (c *JobsClient) Cancel(ctx context.Context, jobID string) (*models.JobResponse, error) {
	if jobID == "" {
		return nil, ErrMissingJobID
	}

	var response models.JobResponse

	_, err := c.client.do(ctx, http.MethodPost, jobPath(jobID)+"/cancel", nil, nil, nil, &response)

	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Query pages over job records, optionally narrowed by type and status.
func (c *JobsClient) Query(jobType models.JobType, jobStatus models.JobStatus, pageSize int) *Pager[models.JobResponse] {
	query := url.Values{}

	if jobType != "" {
		query.Set("jobType", string(jobType))
	}

	if jobStatus != "" {
		query.Set("jobStatus", string(jobStatus))
	}

	return &Pager[models.JobResponse]{
		client: c.client,

		method: http.MethodGet,
		path:   "/jobs/v2/query",
		query:  query,

		pageSize: pageSize,
	}
}
