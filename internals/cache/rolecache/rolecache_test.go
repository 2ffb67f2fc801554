package rolecache

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"artcc_backend/internals/constants"
)

type fakeKV struct {
	data map[string]string
	sets int
	dels int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.sets++
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	f.dels++
	delete(f.data, key)
	return nil
}

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestGetRolesCacheHit(t *testing.T) {
	kv := newFakeKV()
	kv.data["roles-1000000"] = `["ATM","CanRegisterForEvents"]`

	cache := NewWithKV(nil, kv)
	roles, err := cache.GetRoles(context.Background(), 1000000)
	require.NoError(t, err)
	assert.Equal(t, []string{"ATM", "CanRegisterForEvents"}, roles)
	assert.Zero(t, kv.sets)
}

func TestGetRolesMissPopulatesCache(t *testing.T) {
	gdb, mock := mockDB(t)
	kv := newFakeKV()
	cache := NewWithKV(gdb, kv)

	// Unknown member: the users lookup comes back empty and the cache
	// stores an empty list.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_cid"}))

	roles, err := cache.GetRoles(context.Background(), 1000000)
	require.NoError(t, err)
	assert.Empty(t, roles)
	assert.Equal(t, 1, kv.sets)
	assert.Equal(t, "[]", kv.data["roles-1000000"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRolesBadPayloadRepopulates(t *testing.T) {
	gdb, mock := mockDB(t)
	kv := newFakeKV()
	kv.data["roles-1000000"] = "{not json"
	cache := NewWithKV(gdb, kv)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_cid"}))

	roles, err := cache.GetRoles(context.Background(), 1000000)
	require.NoError(t, err)
	assert.Empty(t, roles)
	assert.Equal(t, 1, kv.sets)
}

func TestValidate(t *testing.T) {
	kv := newFakeKV()
	kv.data["roles-1000000"] = `["EC","CanRegisterForEvents"]`
	cache := NewWithKV(nil, kv)

	tests := []struct {
		name    string
		cid     int
		allowed []string
		want    bool
	}{
		{"held role", 1000000, constants.CanEvents, true},
		{"capability", 1000000, []string{constants.CanRegisterForEvents}, true},
		{"missing role", 1000000, constants.SeniorStaff, false},
		{"anonymous", 0, constants.CanEvents, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := cache.Validate(context.Background(), tt.cid, tt.allowed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestInvalidateDropsKey(t *testing.T) {
	kv := newFakeKV()
	kv.data["roles-1000000"] = `["ATM"]`
	cache := NewWithKV(nil, kv)

	require.NoError(t, cache.Invalidate(context.Background(), 1000000))
	assert.Equal(t, 1, kv.dels)
	_, err := kv.Get(context.Background(), "roles-1000000")
	assert.ErrorIs(t, err, ErrMiss)
}
