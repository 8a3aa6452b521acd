package results

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/FlatBartender/bis-solver/internal/errors"
)

const (
	resultKeyPrefix = "bis:result:"
	indexKey        = "bis:results"
	defaultLimit    = 20

	errResultNil     = "result cannot be nil"
	errResultIDEmpty = "result ID cannot be empty"
)

type redisRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

// RedisConfig contains configuration for the Redis results repository.
type RedisConfig struct {
	Client redis.Cmdable
	// TTL expires stored runs, 0 keeps them forever.
	TTL time.Duration
}

func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client, ttl: cfg.TTL}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Result == nil {
		return nil, errors.InvalidArgument(errResultNil)
	}
	if input.Result.ID == "" {
		input.Result.ID = uuid.NewString()
	}
	if input.Result.CreatedAt.IsZero() {
		input.Result.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(input.Result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal result")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, resultKeyPrefix+input.Result.ID, data, r.ttl)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(input.Result.CreatedAt.UnixMilli()),
		Member: input.Result.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save result")
	}
	return &SaveOutput{ID: input.Result.ID}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errResultIDEmpty)
	}

	raw, err := r.client.Get(ctx, resultKeyPrefix+input.ID).Bytes()
	if err == redis.Nil {
		// expired runs leave their index entry behind
		r.client.ZRem(ctx, indexKey, input.ID)
		return nil, errors.NotFoundf("result %s not found", input.ID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get result")
	}

	var out GetOutput
	if err := json.Unmarshal(raw, &out.Result); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal result")
	}
	return &out, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	ids, err := r.client.ZRevRange(ctx, indexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list results")
	}
	return &ListOutput{IDs: ids}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errResultIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, resultKeyPrefix+input.ID)
	pipe.ZRem(ctx, indexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete result")
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("result %s not found", input.ID)
	}
	return &DeleteOutput{}, nil
}
