package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AdminUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	products  repo.ProductRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
	log       *slog.Logger
}

func NewAdminUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	products repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
	log *slog.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		tx:        tx,
		users:     users,
		products:  products,
		auditRepo: auditRepo,
		clock:     clock,
		log:       log,
	}
}

// 管理画面トップの集計。TotalUsers は buyer の数。
type AdminStats struct {
	TotalUsers     int   `json:"total_users"`
	TotalSellers   int   `json:"total_sellers"`
	PendingSellers int   `json:"pending_sellers"`
	TotalProducts  int64 `json:"total_products"`
}

type AdminUpdateSellerStatusInput struct {
	Status model.SellerStatus
}

// GET /admin
func (u *AdminUsecase) Dashboard(ctx context.Context) (AdminStats, error) {
	buyers, err := u.users.ListByRole(ctx, model.RoleBuyer)
	if err != nil {
		return AdminStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	sellers, err := u.users.ListByRole(ctx, model.RoleSeller)
	if err != nil {
		return AdminStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	count, err := u.products.Count(ctx)
	if err != nil {
		return AdminStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	stats := AdminStats{
		TotalUsers:    len(buyers),
		TotalSellers:  len(sellers),
		TotalProducts: count,
	}
	for _, s := range sellers {
		if s.SellerStatus == model.SellerStatusPending || s.SellerStatus == "" {
			stats.PendingSellers++
		}
	}
	return stats, nil
}

// GET /admin/sellers
func (u *AdminUsecase) ListSellers(ctx context.Context) ([]UserDTO, error) {
	return u.listByRole(ctx, model.RoleSeller)
}

// GET /admin/users（buyer のみ）
func (u *AdminUsecase) ListBuyers(ctx context.Context) ([]UserDTO, error) {
	return u.listByRole(ctx, model.RoleBuyer)
}

func (u *AdminUsecase) listByRole(ctx context.Context, role model.Role) ([]UserDTO, error) {
	users, err := u.users.ListByRole(ctx, role)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out, nil
}

// PUT /admin/sellers/:id/status
func (u *AdminUsecase) UpdateSellerStatus(ctx context.Context, actorID string, sellerID string, in AdminUpdateSellerStatusInput) (UserDTO, error) {
	switch in.Status {
	case model.SellerStatusPending, model.SellerStatusApproved, model.SellerStatusRejected:
	default:
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out UserDTO
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		seller, err := r.Users().FindByID(ctx, sellerID)
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if seller.Role != model.RoleSeller {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		before := toJSON(map[string]model.SellerStatus{"seller_status": seller.SellerStatus})
		seller.SellerStatus = in.Status
		seller.UpdatedAt = u.clock.Now()
		if err := r.Users().Update(ctx, seller); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//「誰が」「何を」「どの対象に」「どう変えたか」を残す
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionUpdateSellerStatus,
			ResourceType: model.AuditResourceUser,
			ResourceID:   seller.ID,
			BeforeJSON:   before,
			AfterJSON:    toJSON(map[string]model.SellerStatus{"seller_status": in.Status}),
			CreatedAt:    seller.UpdatedAt,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toUserDTO(seller)
		return nil
	})
	if err != nil {
		return UserDTO{}, err
	}

	u.log.InfoContext(ctx, "seller status updated",
		slog.String("actor_id", actorID),
		slog.String("seller_id", sellerID),
		slog.String("status", string(in.Status)),
	)
	return out, nil
}

// POST /admin/users/:id/ban（発行済みトークンも無効にする）
func (u *AdminUsecase) BanUser(ctx context.Context, actorID string, userID string) (UserDTO, error) {
	var out UserDTO
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := u.findNonAdmin(ctx, r, userID)
		if err != nil {
			return err
		}

		user.IsActive = false
		user.UpdatedAt = u.clock.Now()
		if err := r.Users().Update(ctx, user); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Users().IncrementTokenVersion(ctx, user.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionBanUser,
			ResourceType: model.AuditResourceUser,
			ResourceID:   user.ID,
			BeforeJSON:   `{"is_active":true}`,
			AfterJSON:    `{"is_active":false}`,
			CreatedAt:    user.UpdatedAt,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toUserDTO(user)
		return nil
	})
	if err != nil {
		return UserDTO{}, err
	}

	u.log.InfoContext(ctx, "user banned", slog.String("actor_id", actorID), slog.String("user_id", userID))
	return out, nil
}

// DELETE /admin/users/:id
func (u *AdminUsecase) DeleteUser(ctx context.Context, actorID string, userID string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := u.findNonAdmin(ctx, r, userID)
		if err != nil {
			return err
		}

		if err := r.Users().Delete(ctx, user.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionDeleteUser,
			ResourceType: model.AuditResourceUser,
			ResourceID:   user.ID,
			BeforeJSON:   toJSON(toUserDTO(user)),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.log.InfoContext(ctx, "user deleted", slog.String("actor_id", actorID), slog.String("user_id", userID))
	return nil
}

// 管理者は BAN / 削除の対象にしない
func (u *AdminUsecase) findNonAdmin(ctx context.Context, r repo.TxRepos, userID string) (*model.User, error) {
	user, err := r.Users().FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user.Role == model.RoleAdmin {
		return nil, NewHTTPError(http.StatusForbidden, "cannot modify admin")
	}
	return user, nil
}

// GET /admin/products（全出品者・全状態）
func (u *AdminUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// GET /admin/audit-logs
func (u *AdminUsecase) ListAuditLogs(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	if f.Limit < 1 || f.Limit > repo.MaxAuditLogLimit {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
