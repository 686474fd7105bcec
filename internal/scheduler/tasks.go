package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskReviewRequested = "oversight.review_requested"

type ReviewRequestedPayload struct {
	ItemID   string `json:"itemId"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Agent    string `json:"agent,omitempty"`
}

func NewReviewRequestedTask(payload ReviewRequestedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReviewRequested, data), nil
}

func ParseReviewRequestedPayload(task *asynq.Task) (ReviewRequestedPayload, error) {
	var payload ReviewRequestedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReviewRequestedPayload{}, err
	}
	return payload, nil
}
