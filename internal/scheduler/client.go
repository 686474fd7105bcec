package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"aptivai_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	defaultQueue      = "default"
	reviewTaskRetries = 5
)

type Client struct {
	client *asynq.Client
	queue  string
}

// ReviewEnqueuer queues reviewer notifications.
type ReviewEnqueuer interface {
	EnqueueReviewRequested(ctx context.Context, payload ReviewRequestedPayload) error
}

var _ ReviewEnqueuer = (*Client)(nil)

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueReviewRequested queues one notification per item. The item id is the
// task id, so a repeated enqueue for the same item is ignored.
func (c *Client) EnqueueReviewRequested(ctx context.Context, payload ReviewRequestedPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewReviewRequestedTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID(TaskReviewRequested+":"+payload.ItemID),
		asynq.MaxRetry(reviewTaskRetries),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return defaultQueue
}

// redisClientOpt turns a redis:// or rediss:// URL into asynq options.
// tlsInsecure skips certificate checks and forces TLS on.
func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}

	tlsConfig := opt.TLSConfig
	if tlsInsecure {
		if tlsConfig == nil {
			tlsConfig = &tls.Config{}
		} else {
			tlsConfig = tlsConfig.Clone()
		}
		tlsConfig.InsecureSkipVerify = true
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
