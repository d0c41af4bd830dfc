package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, KeyCabins, []string{"c1"}))

	var out []string
	assert.ErrorIs(t, c.Get(ctx, KeyCabins, &out), ErrMiss)
	assert.Nil(t, out)
	assert.NoError(t, c.Delete(ctx, KeyCabins, KeyDashboard))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, "127.0.0.1:1", "", 0, time.Minute)
	assert.Error(t, err)
	assert.Nil(t, c)
}
