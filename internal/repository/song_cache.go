package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kartik0209/music-backend/internal/domain"
	"github.com/kartik0209/music-backend/pkg/logger"
	redisutil "github.com/kartik0209/music-backend/pkg/redis"
)

// CachedSongReader fronts song lookups with a Redis cache. Metadata
// derivation resolves every member song on each playlist mutation, which
// makes song reads by far the hottest path. Singleflight collapses
// concurrent misses for the same song into one store lookup.
//
// Cache failures degrade to direct store reads; they never fail the
// request.
type CachedSongReader struct {
	inner SongReader
	cache *redisutil.Client
	sf    singleflight.Group
	ttl   time.Duration
	log   logger.Logger
}

// NewCachedSongReader wraps a song reader with a Redis cache.
func NewCachedSongReader(inner SongReader, cache *redisutil.Client, ttl time.Duration, log logger.Logger) *CachedSongReader {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSongReader{inner: inner, cache: cache, ttl: ttl, log: log}
}

// cachedSong distinguishes "cached as missing" from a decode failure.
type cachedSong struct {
	Missing bool         `json:"missing,omitempty"`
	Song    *domain.Song `json:"song,omitempty"`
}

// GetByID resolves one song through the cache.
func (c *CachedSongReader) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	key := redisutil.SongKey(id)

	if val, err := c.cache.Get(ctx, key); err == nil {
		var cached cachedSong
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			if cached.Missing {
				return nil, nil
			}
			return cached.Song, nil
		}
		// Corrupt entry, fall through to the store.
	} else if !errors.Is(err, redisutil.ErrKeyNotFound) {
		c.log.Warn("song cache read failed", logger.String("song_id", id), logger.Error(err))
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		song, err := c.inner.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, song)
		return song, nil
	})
	if err != nil {
		return nil, err
	}
	song, _ := v.(*domain.Song)
	return song, nil
}

// GetMany resolves a batch of songs, serving what it can from cache and
// reading the remainder from the store in one query.
func (c *CachedSongReader) GetMany(ctx context.Context, ids []string) (map[string]*domain.Song, error) {
	result := make(map[string]*domain.Song, len(ids))
	var misses []string

	for _, id := range ids {
		val, err := c.cache.Get(ctx, redisutil.SongKey(id))
		if err != nil {
			misses = append(misses, id)
			continue
		}
		var cached cachedSong
		if err := json.Unmarshal([]byte(val), &cached); err != nil || cached.Missing {
			if err != nil {
				misses = append(misses, id)
			}
			continue
		}
		result[id] = cached.Song
	}

	if len(misses) > 0 {
		loaded, err := c.inner.GetMany(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, id := range misses {
			song := loaded[id] // nil when the reference dangles
			c.store(ctx, redisutil.SongKey(id), song)
			if song != nil {
				result[id] = song
			}
		}
	}
	return result, nil
}

// Invalidate drops a song from the cache. Called after every song write.
func (c *CachedSongReader) Invalidate(ctx context.Context, id string) {
	if err := c.cache.Del(ctx, redisutil.SongKey(id)); err != nil {
		c.log.Warn("song cache invalidation failed", logger.String("song_id", id), logger.Error(err))
	}
}

func (c *CachedSongReader) store(ctx context.Context, key string, song *domain.Song) {
	data, err := json.Marshal(cachedSong{Missing: song == nil, Song: song})
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Warn("song cache write failed", logger.String("key", key), logger.Error(err))
	}
}
