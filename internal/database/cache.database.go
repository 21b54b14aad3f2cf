package database

import (
	"context"
	"fmt"
	"time"

	"mealvote/config"

	"github.com/valkey-io/valkey-go"
)

type CacheClient valkey.Client

type Cache struct {
	General CacheClient
}

// Valkey database index per cache category.
const (
	// GENERAL_CACHE_INDEX (DB 0) - upcoming meal announcement and other
	// read-mostly lookups.
	GENERAL_CACHE_INDEX = iota
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.CacheAddress
	port := config.CachePort
	if address == "" || port == 0 {
		return log.ErrMsg("cache address or port is empty")
	}

	general, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
		SelectDB:    GENERAL_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	s.Cache = Cache{General: general}
	return nil
}

// FlushAllCaches clears every cache database, used when reseeding.
func (s *DB) FlushAllCaches() error {
	if s.Cache.General == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.Cache.General.Do(ctx, s.Cache.General.B().Flushdb().Build()).Error()
}
