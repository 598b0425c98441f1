package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"medfeedback/internal/model"
)

// DraftCache keeps one unfinished questionnaire per patient
type DraftCache interface {
	Set(ctx context.Context, draft *model.Submission, ttl time.Duration) error
	Get(ctx context.Context, patientID string) (*model.Submission, error)
	Delete(ctx context.Context, patientID string) error
}

type draftCache struct {
	client *redis.Client
}

// NewDraftCache creates a new draft cache
func NewDraftCache(client *redis.Client) DraftCache {
	return &draftCache{
		client: client,
	}
}

func draftKey(patientID string) string {
	return "draft:" + patientID
}

func (c *draftCache) Set(ctx context.Context, draft *model.Submission, ttl time.Duration) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, draftKey(draft.PatientID), data, ttl).Err()
}

// Get returns nil, nil when the patient has no draft
func (c *draftCache) Get(ctx context.Context, patientID string) (*model.Submission, error) {
	data, err := c.client.Get(ctx, draftKey(patientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft model.Submission
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *draftCache) Delete(ctx context.Context, patientID string) error {
	return c.client.Del(ctx, draftKey(patientID)).Err()
}
