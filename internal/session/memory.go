// internal/session/memory.go
package session

import (
	"context"
	"sync"
	"time"

	"usdt-exchange-bot/pkg/logger"
)

// MemoryStore - хранилище сессий в памяти процесса.
// Сессии, простаивающие дольше TTL, вычищаются фоновым уборщиком,
// чтобы карта не росла бесконечно. Рестарт процесса теряет незавершённые диалоги
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	ttl      time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	now      func() time.Time
}

// NewMemoryStore создает новое хранилище сессий в памяти
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, chatID int64) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl {
		// истекшую сессию не отдаём, уборщик удалит её сам
		return nil, nil
	}

	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Put(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	copied.UpdatedAt = s.now()
	s.sessions[sess.ChatID] = &copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, chatID)
	return nil
}

// StartJanitor запускает фоновую чистку простаивающих сессий
func (s *MemoryStore) StartJanitor(interval time.Duration) {
	s.mu.Lock()
	if s.running || s.ttl <= 0 {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop останавливает уборщика
func (s *MemoryStore) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for chatID, sess := range s.sessions {
		if now.Sub(sess.UpdatedAt) > s.ttl {
			delete(s.sessions, chatID)
			removed++
		}
	}

	if removed > 0 {
		logger.Debug("🧹 Удалено простаивающих сессий: %d", removed)
	}
}
