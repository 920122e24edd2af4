package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/extra/redisotel/v9"
	goredislib "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	PONG               = "PONG"
	RedisScanBatchSize = 1000
)

func init() {
	if err := RegisterStorage(Redis, func() ServiceStorage { return new(RedisDB) }); err != nil {
		panic(err)
	}
}

type RedisDB struct {
	db *goredislib.Client
}

func (b *RedisDB) Init(opts ...Option) error {
	address, err := stringOption(opts, RedisAddressOption)
	if err != nil {
		return err
	}
	if address == "" {
		return errors.New("redis address option is required")
	}
	password, err := stringOption(opts, PasswordOption)
	if err != nil {
		return err
	}

	client := goredislib.NewClient(&goredislib.Options{
		Addr:     address,
		Password: password,
	})
	if err = redisotel.InstrumentTracing(client); err != nil {
		return errors.Wrap(err, "instrumenting redis tracing")
	}

	b.db = client
	return nil
}

func (b *RedisDB) Type() Type {
	return Redis
}

func (b *RedisDB) URI() string {
	return b.db.Options().Addr
}

func (b *RedisDB) IsOpen() bool {
	pong, err := b.db.Ping(context.Background()).Result()
	if err != nil {
		logrus.WithError(err).Error("pinging redis")
		return false
	}

	return pong == PONG
}

func (b *RedisDB) Close() error {
	return b.db.Close()
}

func (b *RedisDB) Write(ctx context.Context, namespace, key string, value []byte) error {
	if namespace == "" || key == "" {
		return errors.New("namespace and key required")
	}
	// Zero expiration means the key has no expiration time.
	return b.db.Set(ctx, Join(namespace, key), value, 0).Err()
}

func (b *RedisDB) Read(ctx context.Context, namespace, key string) ([]byte, error) {
	res, err := b.db.Get(ctx, Join(namespace, key)).Bytes()
	if errors.Is(err, goredislib.Nil) {
		return nil, nil
	}
	return res, err
}

func (b *RedisDB) ReadAll(ctx context.Context, namespace string) (map[string][]byte, error) {
	prefix := Join(namespace, "")
	keys, err := b.readAllKeys(ctx, prefix)
	if err != nil {
		return nil, errors.Wrap(err, "read all keys error")
	}

	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	values, err := b.db.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "getting multiple keys")
	}
	if len(keys) != len(values) {
		return nil, errors.New("key length does not match value length")
	}

	for i, val := range values {
		// a key may expire or be deleted between the scan and the get
		s, ok := val.(string)
		if !ok {
			continue
		}
		result[keys[i][len(prefix):]] = []byte(s)
	}
	return result, nil
}

func (b *RedisDB) readAllKeys(ctx context.Context, prefix string) ([]string, error) {
	var cursor uint64
	allKeys := make([]string, 0)
	for {
		keys, nextCursor, err := b.db.Scan(ctx, cursor, prefix+"*", RedisScanBatchSize).Result()
		if err != nil {
			return nil, errors.Wrap(err, "scan error")
		}

		allKeys = append(allKeys, keys...)

		if nextCursor == 0 {
			break
		}
		cursor = nextCursor
	}
	return allKeys, nil
}

func (b *RedisDB) Delete(ctx context.Context, namespace, key string) error {
	return b.db.Del(ctx, Join(namespace, key)).Err()
}

var _ ServiceStorage = (*RedisDB)(nil)
