package submission

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qmdang/pitchshift-be/shared/rabbitmq"
)

// QueueDispatcher publishes job ids to RabbitMQ for the worker service.
// The handoff is fire-and-forget: no result channel comes back, the
// submitter observes progress by re-reading the job record.
type QueueDispatcher struct {
	client *rabbitmq.Client
}

// NewQueueDispatcher creates a dispatcher over a connected RabbitMQ client
func NewQueueDispatcher(client *rabbitmq.Client) *QueueDispatcher {
	return &QueueDispatcher{client: client}
}

// Dispatch publishes a persistent {"job_id": ...} message
func (d *QueueDispatcher) Dispatch(ctx context.Context, jobID string) error {
	body, err := json.Marshal(map[string]string{"job_id": jobID})
	if err != nil {
		return fmt.Errorf("failed to marshal job message: %w", err)
	}

	return d.client.Publish(ctx, body, "application/json")
}
