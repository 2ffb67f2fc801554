package rolecache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"artcc_backend/internals/constants"
	usermodel "artcc_backend/internals/features/users/model"
)

// The cache mirrors each member's role list under roles-<cid> for
// fifteen minutes. It is read-through with lazy population and must be
// refreshed explicitly after a role mutation; between refreshes it is
// eventually consistent with the users table.

const rolesTTL = 15 * time.Minute

// ErrMiss is returned by a KV when the key is absent.
var ErrMiss = errors.New("rolecache: miss")

// KV is the minimal key-value surface the cache needs. Production wires
// a redis client; tests use an in-memory map.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisKV struct {
	rdb *redis.Client
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

type Cache struct {
	db *gorm.DB
	kv KV
}

// New builds the role cache. A nil redis client disables the cache layer
// so every lookup reads the users table directly.
func New(db *gorm.DB, rdb *redis.Client) *Cache {
	var kv KV
	if rdb != nil {
		kv = &redisKV{rdb: rdb}
	}
	return &Cache{db: db, kv: kv}
}

// NewWithKV is the injection point for tests.
func NewWithKV(db *gorm.DB, kv KV) *Cache {
	return &Cache{db: db, kv: kv}
}

func key(cid int) string {
	return fmt.Sprintf("roles-%d", cid)
}

// GetRoles returns the member's role short names plus capability
// pseudo-roles, populating the cache on a miss. A CID with no user row
// yields an empty list, not an error.
func (s *Cache) GetRoles(ctx context.Context, cid int) ([]string, error) {
	if s.kv == nil {
		return s.loadRoles(ctx, cid)
	}

	raw, err := s.kv.Get(ctx, key(cid))
	if err == nil {
		var roles []string
		if err := sonic.UnmarshalString(raw, &roles); err == nil {
			return roles, nil
		}
		log.Printf("[WARN] rolecache: bad payload for cid=%d, repopulating", cid)
	} else if !errors.Is(err, ErrMiss) {
		log.Printf("[WARN] rolecache: get failed for cid=%d: %v", cid, err)
	}

	roles, err := s.loadRoles(ctx, cid)
	if err != nil {
		return nil, err
	}
	if err := s.SetRoles(ctx, cid, roles); err != nil {
		log.Printf("[WARN] rolecache: set failed for cid=%d: %v", cid, err)
	}
	return roles, nil
}

// SetRoles stores the list with the standard TTL.
func (s *Cache) SetRoles(ctx context.Context, cid int, roles []string) error {
	if s.kv == nil {
		return nil
	}
	raw, err := sonic.MarshalString(roles)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key(cid), raw, rolesTTL)
}

// Refresh reloads the list from the database, used after role or
// capability mutations so authorization picks the change up immediately.
func (s *Cache) Refresh(ctx context.Context, cid int) error {
	roles, err := s.loadRoles(ctx, cid)
	if err != nil {
		return err
	}
	return s.SetRoles(ctx, cid, roles)
}

// Invalidate drops the cached list without repopulating it.
func (s *Cache) Invalidate(ctx context.Context, cid int) error {
	if s.kv == nil {
		return nil
	}
	return s.kv.Del(ctx, key(cid))
}

// Validate reports whether the member holds any of the allowed roles.
func (s *Cache) Validate(ctx context.Context, cid int, allowed []string) (bool, error) {
	if cid == 0 {
		return false, nil
	}
	roles, err := s.GetRoles(ctx, cid)
	if err != nil {
		return false, err
	}
	for _, have := range roles {
		for _, want := range allowed {
			if have == want {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *Cache) loadRoles(ctx context.Context, cid int) ([]string, error) {
	var user usermodel.UserModel
	err := s.db.WithContext(ctx).
		Preload("Roles").
		First(&user, "user_cid = ?", cid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(user.Roles)+2)
	for _, r := range user.Roles {
		roles = append(roles, r.RoleNameShort)
	}
	if user.UserCanRegisterForEvents {
		roles = append(roles, constants.CanRegisterForEvents)
	}
	if user.UserCanRequestTraining {
		roles = append(roles, constants.CanRequestTraining)
	}
	return roles, nil
}
