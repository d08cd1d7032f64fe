package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key for an admin's active session
func (r *CacheKeyStruct) AdminSessionKey(adminID int) string {
	return fmt.Sprintf("admin:%d:session", adminID)
}

// BoardChannel returns the Redis PubSub channel for front-desk board events
func (r *CacheKeyStruct) BoardChannel() string {
	return "board:events"
}

var CacheKey = NewCacheKeyStruct()
