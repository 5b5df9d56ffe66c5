package memory

import (
	"context"
	"slices"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AuditLogStore struct {
	mu     sync.RWMutex
	logs   []model.AuditLog
	nextID int64
}

func NewAuditLogStore() *AuditLogStore {
	return &AuditLogStore{nextID: 1}
}

func (s *AuditLogStore) Create(ctx context.Context, log model.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = s.nextID
	s.nextID++
	s.logs = append(s.logs, log)
	return nil
}

// 新しい順
func (s *AuditLogStore) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit, offset := f.Page()
	out := []model.AuditLog{}
	skipped := 0
	for i := len(s.logs) - 1; i >= 0; i-- {
		l := s.logs[i]
		if !matchAudit(l, f) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, l)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func matchAudit(l model.AuditLog, f repo.AuditLogFilter) bool {
	if f.ActorUserID != nil && l.ActorUserID != *f.ActorUserID {
		return false
	}
	if len(f.Actions) > 0 && !slices.Contains(f.Actions, l.Action) {
		return false
	}
	if f.ResourceType != nil && l.ResourceType != *f.ResourceType {
		return false
	}
	if f.ResourceID != nil && l.ResourceID != *f.ResourceID {
		return false
	}
	if f.CreatedFrom != nil && l.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && l.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

var _ repo.AuditLogRepository = (*AuditLogStore)(nil)
