package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const secretKeyPrefix = "secret:"

type secretStore struct {
	client *redis.Client
}

// NewSecretStore keeps credentials under secret:<name>. Values are never logged.
func NewSecretStore(client *redis.Client) domain.SecretStore {
	return &secretStore{
		client: client,
	}
}

func (s *secretStore) Get(ctx context.Context, name string) (string, bool, error) {
	if name == "" {
		return "", false, ErrInvalidSecretName
	}

	val, err := s.client.Get(ctx, secretKeyPrefix+name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}

	return val, true, nil
}

// Set stores value and reports whether a previous value was replaced.
func (s *secretStore) Set(ctx context.Context, name, value string) (bool, error) {
	if name == "" {
		return false, ErrInvalidSecretName
	}

	key := secretKeyPrefix + name

	pipe := s.client.TxPipeline()
	exists := pipe.Exists(ctx, key)
	pipe.Set(ctx, key, value, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return exists.Val() > 0, nil
}

func (s *secretStore) Delete(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, ErrInvalidSecretName
	}

	deleted, err := s.client.Del(ctx, secretKeyPrefix+name).Result()
	if err != nil {
		return false, err
	}

	return deleted > 0, nil
}
