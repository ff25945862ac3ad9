package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/logger"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// RoomDataSource defines the interface for room metadata fetching.
type RoomDataSource interface {
	GetAllRooms(ctx context.Context) ([]models.Room, error)
	GetRoomByID(ctx context.Context, roomID int) (*models.Room, error)
}

const (
	roomKeyPrefix    = "room:id:"
	allRoomsKey      = "room:all"
	cacheCheckPeriod = 10 * time.Second
)

// RoomCache is a read-through cache for room metadata. Room names and
// capacities change rarely, so serving them slightly stale is acceptable.
// Availability is time-sensitive and is never cached here; every
// availability query goes to the upstream API.
//
// Upstream calls carry the requesting user's bearer token, so population
// happens inside request handling rather than from a background refresher.
type RoomCache struct {
	cache      *gocache.Cache
	dataSource RoomDataSource
	mu         sync.Mutex
	ttl        time.Duration
	disabled   bool
}

// NewRoomCache creates a room metadata cache. A non-positive ttlSeconds or
// disabled=true turns the cache into a pass-through to the data source.
func NewRoomCache(dataSource RoomDataSource, ttlSeconds int, disabled bool) *RoomCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		disabled = true
	}

	return &RoomCache{
		cache:      gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		dataSource: dataSource,
		ttl:        ttl,
		disabled:   disabled,
	}
}

// GetAll returns all rooms, fetching from upstream on a cache miss.
func (rc *RoomCache) GetAll(ctx context.Context) ([]models.Room, error) {
	if rc.disabled {
		return rc.dataSource.GetAllRooms(ctx)
	}

	if data, found := rc.cache.Get(allRoomsKey); found {
		if rooms, ok := data.([]models.Room); ok {
			metrics.CacheHits.WithLabelValues("room_all").Inc()
			return rooms, nil
		}
		logger.Error("Invalid cache data type for room list")
		rc.cache.Delete(allRoomsKey)
	}

	metrics.CacheMisses.WithLabelValues("room_all").Inc()

	rooms, err := rc.dataSource.GetAllRooms(ctx)
	if err != nil {
		return nil, err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Set(allRoomsKey, rooms, rc.ttl)
	for i := range rooms {
		rc.cache.Set(roomKeyPrefix+strconv.Itoa(rooms[i].ID), &rooms[i], rc.ttl)
	}

	logger.Debug("Room cache populated", zap.Int("count", len(rooms)))
	return rooms, nil
}

// GetByID returns a single room, fetching from upstream on a cache miss.
func (rc *RoomCache) GetByID(ctx context.Context, roomID int) (*models.Room, error) {
	if rc.disabled {
		return rc.dataSource.GetRoomByID(ctx, roomID)
	}

	key := roomKeyPrefix + strconv.Itoa(roomID)

	if data, found := rc.cache.Get(key); found {
		if room, ok := data.(*models.Room); ok {
			metrics.CacheHits.WithLabelValues("room_by_id").Inc()
			return room, nil
		}
		logger.Error("Invalid cache data type", zap.Int("room_id", roomID))
		rc.cache.Delete(key)
	}

	metrics.CacheMisses.WithLabelValues("room_by_id").Inc()

	room, err := rc.dataSource.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Set(key, room, rc.ttl)

	return room, nil
}

// Stats reports cached item count for the health endpoint.
func (rc *RoomCache) Stats() string {
	if rc.disabled {
		return "disabled"
	}
	return fmt.Sprintf("%d items, ttl %s", rc.cache.ItemCount(), rc.ttl)
}
