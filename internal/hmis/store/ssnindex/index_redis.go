package ssnindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

const keyPrefix = "placemaker:ssn:"

// releaseScript deletes the key only while it still names the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisIndex shares SSN claims between processes. SETNX makes the
// check-and-claim atomic; keys carry no TTL.
type RedisIndex struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisIndex {
	return &RedisIndex{client: client}
}

func (x *RedisIndex) Claim(ctx context.Context, ssn string, owner id.PersonalID) error {
	key := keyPrefix + fingerprint(ssn)
	ok, err := x.client.SetNX(ctx, key, owner.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("claim ssn: %w", err)
	}
	if ok {
		return nil
	}
	held, err := x.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// released between SETNX and GET; try once more
		return x.claimOnce(ctx, key, owner)
	}
	if err != nil {
		return fmt.Errorf("read ssn claim: %w", err)
	}
	if held != owner.String() {
		return ErrClaimed
	}
	return nil
}

func (x *RedisIndex) claimOnce(ctx context.Context, key string, owner id.PersonalID) error {
	ok, err := x.client.SetNX(ctx, key, owner.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("claim ssn: %w", err)
	}
	if !ok {
		return ErrClaimed
	}
	return nil
}

func (x *RedisIndex) Release(ctx context.Context, ssn string, owner id.PersonalID) error {
	key := keyPrefix + fingerprint(ssn)
	if err := releaseScript.Run(ctx, x.client, []string{key}, owner.String()).Err(); err != nil {
		return fmt.Errorf("release ssn: %w", err)
	}
	return nil
}

func (x *RedisIndex) Owner(ctx context.Context, ssn string) (id.PersonalID, error) {
	held, err := x.client.Get(ctx, keyPrefix+fingerprint(ssn)).Result()
	if errors.Is(err, redis.Nil) {
		return id.PersonalID{}, sentinel.ErrNotFound
	}
	if err != nil {
		return id.PersonalID{}, fmt.Errorf("read ssn claim: %w", err)
	}
	owner, err := id.ParsePersonalID(held)
	if err != nil {
		return id.PersonalID{}, fmt.Errorf("stored ssn owner: %w", err)
	}
	return owner, nil
}
