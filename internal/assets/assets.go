// Package assets resolves, loads and caches level resources.
package assets

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/poptex/internal/config"
	"github.com/Faultbox/poptex/internal/logger"
	"github.com/Faultbox/poptex/pkg/formats"
	"github.com/Faultbox/poptex/pkg/landscape"
)

// Directories under the game install holding tables and levels.
const (
	DataDir   = "data"
	LevelsDir = "levels"
)

// Manager loads levels and their landscape tables from a game install.
// Tables are shared by every level of the same landscape type and are cached.
type Manager struct {
	dataDir   string
	levelDir  string
	levelSize int

	cache *ristretto.Cache[string, *landscape.Tables]
	group singleflight.Group
	log   *zap.Logger

	// Stats
	hits   atomic.Int64
	misses atomic.Int64
}

// NewManager creates a manager rooted at data.BasePath.
func NewManager(data config.DataConfig, cache config.CacheConfig) (*Manager, error) {
	size := data.LevelSize
	if size <= 0 {
		size = landscape.DefaultLandSize
	}
	maxCost := cache.MaxCostBytes()
	if maxCost <= 0 {
		maxCost = config.Default().Cache.MaxCostBytes()
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, *landscape.Tables]{
		NumCounters: 1000,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating table cache: %w", err)
	}

	return &Manager{
		dataDir:   filepath.Join(data.BasePath, DataDir),
		levelDir:  filepath.Join(data.BasePath, LevelsDir),
		levelSize: size,
		cache:     c,
		log:       logger.Named("assets"),
	}, nil
}

// Tables returns the lookup tables for landscape type key, loading them on
// first use.
func (m *Manager) Tables(key string) (*landscape.Tables, error) {
	if err := formats.ValidateLandscapeType(key); err != nil {
		return nil, err
	}

	m.cache.Wait()
	if t, ok := m.cache.Get(key); ok {
		m.hits.Add(1)
		return t, nil
	}
	m.misses.Add(1)

	v, err, _ := m.group.Do(key, func() (any, error) {
		paths := formats.NewTablePaths(m.dataDir, key)
		t, err := formats.LoadTables(paths)
		if err != nil {
			return nil, fmt.Errorf("loading tables for landscape type %s: %w", key, err)
		}
		if !m.cache.Set(key, t, int64(t.Size())) {
			m.log.Warn("table set not cached", zap.String("type", key), zap.Int("bytes", t.Size()))
		}
		m.cache.Wait()
		m.log.Debug("tables loaded",
			zap.String("type", key),
			zap.Int("bigf0", len(t.Bigf0)),
			zap.Int("cliff0", len(t.Cliff0)))
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*landscape.Tables), nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}

// Close releases the table cache.
func (m *Manager) Close() {
	m.cache.Close()
}
