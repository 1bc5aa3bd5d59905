package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	errx "github.com/smart-spoon-core/advisor/internal/core/error"
	logx "github.com/smart-spoon-core/advisor/pkg/logger"
)

// Header fields of a session hash.
const (
	fieldFood      = "food"
	fieldOutcome   = "outcome"
	fieldSalt      = "salt"
	fieldStartedAt = "started_at"
	fieldRounds    = "rounds"
)

// RedisSessionStore keeps each session as a hash (the analysis) plus a list of
// JSON encoded rounds. Both keys share the session TTL.
type RedisSessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionStore(rdb redis.Cmdable, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func headerKey(sessionID string) string {
	return fmt.Sprintf("advisor:session:%s", sessionID)
}

func roundsKey(sessionID string) string {
	return fmt.Sprintf("advisor:session:%s:rounds", sessionID)
}

func (s *RedisSessionStore) Start(ctx context.Context, rec model.SessionRecord) error {
	hk, rk := headerKey(rec.SessionID), roundsKey(rec.SessionID)

	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, hk, rk)
		p.HSet(ctx, hk, map[string]any{
			fieldFood:      rec.Food,
			fieldOutcome:   string(rec.Outcome),
			fieldSalt:      string(rec.SaltDosage),
			fieldStartedAt: rec.StartedAt.UTC().Format(time.RFC3339Nano),
			fieldRounds:    0,
		})
		if s.ttl > 0 {
			p.Expire(ctx, hk, s.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("session_id", rec.SessionID).Msg("failed to start session record")
		return errx.WrapRedis(err)
	}
	return nil
}

// AppendRound numbers the round with HINCRBY on the header so two writers
// never share a number.
func (s *RedisSessionStore) AppendRound(ctx context.Context, sessionID string, round model.Round) (int, error) {
	hk, rk := headerKey(sessionID), roundsKey(sessionID)

	n, err := s.rdb.Exists(ctx, hk).Result()
	if err != nil {
		return 0, errx.WrapRedis(err)
	}
	if n == 0 {
		return 0, notFound(sessionID)
	}

	number, err := s.rdb.HIncrBy(ctx, hk, fieldRounds, 1).Result()
	if err != nil {
		return 0, errx.WrapRedis(err)
	}
	round.Number = int(number)

	b, err := json.Marshal(round)
	if err != nil {
		return 0, fmt.Errorf("marshal round %d: %w", round.Number, err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, rk, b)
		if s.ttl > 0 {
			p.Expire(ctx, hk, s.ttl)
			p.Expire(ctx, rk, s.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Int("round", round.Number).Msg("failed to store round")
		return 0, errx.WrapRedis(err)
	}
	return round.Number, nil
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*model.SessionRecord, error) {
	var (
		header *redis.MapStringStringCmd
		rows   *redis.StringSliceCmd
	)
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		header = p.HGetAll(ctx, headerKey(sessionID))
		rows = p.LRange(ctx, roundsKey(sessionID), 0, -1)
		return nil
	})
	if err != nil {
		return nil, errx.WrapRedis(err)
	}

	h := header.Val()
	if len(h) == 0 {
		return nil, notFound(sessionID)
	}
	rec, err := decodeHeader(sessionID, h)
	if err != nil {
		return nil, err
	}

	rec.Rounds = make([]model.Round, 0, len(rows.Val()))
	for i, row := range rows.Val() {
		var r model.Round
		if err := json.Unmarshal([]byte(row), &r); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Int("index", i).Msg("corrupt round entry")
			return nil, fmt.Errorf("decode round at index %d: %w", i, err)
		}
		rec.Rounds = append(rec.Rounds, r)
	}
	return rec, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, headerKey(sessionID), roundsKey(sessionID)).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

func decodeHeader(sessionID string, h map[string]string) (*model.SessionRecord, error) {
	rec := &model.SessionRecord{
		SessionID:  sessionID,
		Food:       h[fieldFood],
		Outcome:    model.MatchOutcome(h[fieldOutcome]),
		SaltDosage: model.SaltDosage(h[fieldSalt]),
	}
	if v := h[fieldStartedAt]; v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("decode %s of session %s: %w", fieldStartedAt, sessionID, err)
		}
		rec.StartedAt = t
	}
	if _, err := strconv.Atoi(h[fieldRounds]); err != nil {
		return nil, fmt.Errorf("decode %s of session %s: %w", fieldRounds, sessionID, err)
	}
	return rec, nil
}

var _ model.SessionStore = (*RedisSessionStore)(nil)
