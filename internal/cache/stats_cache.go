package cache

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"medfeedback/internal/model"
)

// AllDepartments is the pseudo-department counting whole submissions
const AllDepartments = "_all"

// StatsCache keeps running verdict counts per department in Redis hashes
type StatsCache interface {
	Record(ctx context.Context, overall model.Overall, byDepartment map[string]model.FeedbackCategory) error
	Get(ctx context.Context, departmentID string) (*model.DepartmentStats, error)
	All(ctx context.Context) ([]model.DepartmentStats, error)
	Attention(ctx context.Context, limit int) ([]AttentionEntry, error)
}

// AttentionEntry ranks a department by negative verdicts
type AttentionEntry struct {
	DepartmentID string `json:"departmentId"`
	Negative     int64  `json:"negative"`
	Rank         int    `json:"rank"`
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{client: client}
}

func (c *statsCache) key(departmentID string) string {
	return fmt.Sprintf("stats:dept:%s", departmentID)
}

func (c *statsCache) indexKey() string {
	return "stats:departments"
}

func (c *statsCache) attentionKey() string {
	return "stats:negative"
}

// Record counts the submission's overall verdict and each department's verdict
func (c *statsCache) Record(ctx context.Context, overall model.Overall, byDepartment map[string]model.FeedbackCategory) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, c.key(AllDepartments), string(overall), 1)
		for dept, cat := range byDepartment {
			pipe.SAdd(ctx, c.indexKey(), dept)
			pipe.HIncrBy(ctx, c.key(dept), string(cat.Overall), 1)
			if cat.Overall == model.OverallNegative {
				pipe.ZIncrBy(ctx, c.attentionKey(), 1, dept)
			}
		}
		return nil
	})
	return err
}

func (c *statsCache) Get(ctx context.Context, departmentID string) (*model.DepartmentStats, error) {
	fields, err := c.client.HGetAll(ctx, c.key(departmentID)).Result()
	if err != nil {
		return nil, err
	}
	stats := parseStats(departmentID, fields)
	return &stats, nil
}

// All returns every department's counts, sorted by ID, followed by the _all total
func (c *statsCache) All(ctx context.Context) ([]model.DepartmentStats, error) {
	depts, err := c.client.SMembers(ctx, c.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(depts)
	depts = append(depts, AllDepartments)

	pipe := c.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(depts))
	for i, d := range depts {
		cmds[i] = pipe.HGetAll(ctx, c.key(d))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	out := make([]model.DepartmentStats, 0, len(depts))
	for i, d := range depts {
		out = append(out, parseStats(d, cmds[i].Val()))
	}
	return out, nil
}

// Attention returns the departments with the most negative verdicts first
func (c *statsCache) Attention(ctx context.Context, limit int) ([]AttentionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	results, err := c.client.ZRevRangeWithScores(ctx, c.attentionKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	return rankEntries(results), nil
}

func rankEntries(results []redis.Z) []AttentionEntry {
	entries := make([]AttentionEntry, 0, len(results))
	for i, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, AttentionEntry{
			DepartmentID: member,
			Negative:     int64(z.Score),
			Rank:         i + 1,
		})
	}
	return entries
}

func parseStats(departmentID string, fields map[string]string) model.DepartmentStats {
	count := func(o model.Overall) int64 {
		n, _ := strconv.ParseInt(fields[string(o)], 10, 64)
		return n
	}
	return model.DepartmentStats{
		DepartmentID: departmentID,
		Positive:     count(model.OverallPositive),
		Neutral:      count(model.OverallNeutral),
		Negative:     count(model.OverallNegative),
	}
}
