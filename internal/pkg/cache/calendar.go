package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/redis/go-redis/v9"
)

const calendarPrefix = "calendar"

// CalendarCache stores resolved calendars in Redis under
// calendar:<company>:<scope>:<start>:<end>.
type CalendarCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCalendarCache(client *redis.Client, ttl time.Duration) *CalendarCache {
	return &CalendarCache{client: client, ttl: ttl}
}

var _ calendar.ResolutionCache = (*CalendarCache)(nil)

// cachedResolution is the wire form; JSON object keys cannot be dates.
type cachedResolution struct {
	Weekends []dateutil.Date `json:"weekends"`
	Holidays []calendar.Day  `json:"holidays"`
}

func calendarKey(companyID string, scope calendar.Scope, rng dateutil.Range) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", calendarPrefix, companyID, scope, rng.Start, rng.End)
}

func encodeResolution(res calendar.Resolution) ([]byte, error) {
	c := cachedResolution{
		Weekends: make([]dateutil.Date, 0, len(res.Weekends)),
		Holidays: make([]calendar.Day, 0, len(res.Holidays)),
	}
	for d := range res.Weekends {
		c.Weekends = append(c.Weekends, d)
	}
	for _, h := range res.Holidays {
		c.Holidays = append(c.Holidays, h)
	}
	return json.Marshal(c)
}

func decodeResolution(data []byte) (calendar.Resolution, error) {
	var c cachedResolution
	if err := json.Unmarshal(data, &c); err != nil {
		return calendar.Resolution{}, err
	}
	res := calendar.EmptyResolution()
	for _, d := range c.Weekends {
		res.Weekends[d] = struct{}{}
	}
	for _, h := range c.Holidays {
		res.Holidays[h.Date] = h
	}
	return res, nil
}

func (c *CalendarCache) Get(ctx context.Context, companyID string, scope calendar.Scope, rng dateutil.Range) (calendar.Resolution, bool, error) {
	data, err := c.client.Get(ctx, calendarKey(companyID, scope, rng)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return calendar.Resolution{}, false, nil
		}
		return calendar.Resolution{}, false, err
	}

	res, err := decodeResolution(data)
	if err != nil {
		return calendar.Resolution{}, false, fmt.Errorf("corrupt calendar cache entry: %w", err)
	}
	return res, true, nil
}

func (c *CalendarCache) Set(ctx context.Context, companyID string, scope calendar.Scope, rng dateutil.Range, res calendar.Resolution) error {
	data, err := encodeResolution(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, calendarKey(companyID, scope, rng), data, c.ttl).Err()
}

// Invalidate drops every cached window of the company.
func (c *CalendarCache) Invalidate(ctx context.Context, companyID string) error {
	pattern := fmt.Sprintf("%s:%s:*", calendarPrefix, companyID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
