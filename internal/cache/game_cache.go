package cache

import (
	"sync"
	"time"

	"reeltrivia/internal/game"
)

// GameCache holds the live game sessions. Games exist only in memory, so
// this is a map with an idle sweep rather than a shared store.
type GameCache interface {
	Set(id string, s *game.Session)
	Get(id string) (*game.Session, bool)
	Delete(id string)
	Count() int
}

type gameCache struct {
	mu      sync.RWMutex
	games   map[string]*cachedGame
	maxIdle time.Duration
}

type cachedGame struct {
	session  *game.Session
	lastSeen time.Time
}

// NewGameCache creates the in-memory store. Games untouched for maxIdle are
// evicted by a background sweep; zero disables eviction.
func NewGameCache(maxIdle time.Duration) GameCache {
	c := &gameCache{
		games:   make(map[string]*cachedGame),
		maxIdle: maxIdle,
	}
	if maxIdle > 0 {
		go c.sweep()
	}
	return c
}

func (c *gameCache) Set(id string, s *game.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.games[id] = &cachedGame{session: s, lastSeen: time.Now()}
}

func (c *gameCache) Get(id string) (*game.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.games[id]
	if !ok {
		return nil, false
	}
	g.lastSeen = time.Now()
	return g.session, true
}

func (c *gameCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.games, id)
}

func (c *gameCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.games)
}

func (c *gameCache) sweep() {
	ticker := time.NewTicker(c.maxIdle / 2)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.maxIdle)
		c.mu.Lock()
		for id, g := range c.games {
			if g.lastSeen.Before(cutoff) {
				delete(c.games, id)
			}
		}
		c.mu.Unlock()
	}
}
