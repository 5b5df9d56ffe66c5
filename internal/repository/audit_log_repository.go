package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// 一覧の既定件数と上限
const (
	DefaultAuditLogLimit = 50
	MaxAuditLogLimit     = 100
)

//監査ログの絞り込み条件。
type AuditLogFilter struct {
	ActorUserID  *string
	//いずれかに一致（空なら絞り込まない）。商品の登録と編集をまとめて引ける。
	Actions      []model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// Page は limit/offset を範囲に収めて返す。
func (f AuditLogFilter) Page() (limit, offset int) {
	limit = f.Limit
	if limit <= 0 || limit > MaxAuditLogLimit {
		limit = DefaultAuditLogLimit
	}
	offset = f.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// 監査ログの保存・一覧取得の約束。
type AuditLogRepository interface {
	//監査ログを1件保存
	Create(ctx context.Context, log model.AuditLog) error

	//監査ログを条件で一覧取得（新しい順）。
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
