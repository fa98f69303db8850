package database

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

func NewMemcached(server string) *memcache.Client {
	client := memcache.New(server)
	client.Timeout = 200 * time.Millisecond
	return client
}
