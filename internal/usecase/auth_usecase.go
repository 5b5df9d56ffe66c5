package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

type UserDTO struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Role         model.Role         `json:"role"`
	SellerStatus model.SellerStatus `json:"seller_status,omitempty"`
	AvatarURL    string             `json:"avatar_url,omitempty"`
	IsActive     bool               `json:"is_active"`
}

type JwtAccessTokenDTO struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenVersion int    `json:"token_version"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type AuthRegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type AuthRegisterResponse struct {
	User UserDTO `json:"user"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// AuthUsecase はログイン・登録・ログアウト。
// トークンの更新や期限切れ後の扱いはここでは持たない。
type AuthUsecase struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	validator AuthValidator
	idGen     IDGenerator
	clock     Clock
	log       *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	validator AuthValidator,
	idGen IDGenerator,
	clock Clock,
	log *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
		log:       log,
	}
}

// 会員登録。seller は審査待ち（pending）で作る。
func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthRegisterResponse, error) {
	if req.Role == "" {
		req.Role = model.RoleBuyer
	}
	if err := u.validator.ValidateRegister(ctx, req.Name, req.Email, req.Password, req.Role); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: pwHash,
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Role == model.RoleSeller {
		user.SellerStatus = model.SellerStatusPending
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, NewHTTPError(http.StatusConflict, "email already used")
		}
		u.log.ErrorContext(ctx, "create user failed", slog.Any("err", err))
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return &AuthRegisterResponse{User: toUserDTO(user)}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	//入力検証
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//ユーザー取得
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//パスワード照合（bcrypt）
	if !u.verifier.Verify(req.Password, user.PasswordHash) {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return nil, NewHTTPError(http.StatusForbidden, "account banned")
	}

	//last_login更新
	now := u.clock.Now()
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		u.log.WarnContext(ctx, "update last login failed", slog.String("user_id", user.ID), slog.Any("err", err))
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, user.TokenVersion, now)
	if err != nil {
		u.log.ErrorContext(ctx, "issue token failed", slog.Any("err", err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthLoginResponse{
		User: toUserDTO(user),
		Token: JwtAccessTokenDTO{
			AccessToken:  token,
			ExpiresIn:    int(expiresAt.Sub(now).Seconds()),
			TokenVersion: user.TokenVersion,
		},
	}, nil
}

// ログアウト（token_version を上げて発行済みトークンを無効にする）
func (u *AuthUsecase) Logout(ctx context.Context, userID string) (*SuccessResponse, error) {
	if userID == "" {
		return nil, NewRedirectError(http.StatusUnauthorized, "unauthorized", "/login")
	}

	if err := u.users.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewRedirectError(http.StatusUnauthorized, "unauthorized", "/login")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return &SuccessResponse{Message: "logout success"}, nil
}

// GET /profile
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*UserDTO, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, NewRedirectError(http.StatusUnauthorized, "unauthorized", "/login")
	}
	if !user.IsActive {
		return nil, NewRedirectError(http.StatusUnauthorized, "unauthorized", "/login")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		SellerStatus: u.SellerStatus,
		AvatarURL:    u.AvatarURL,
		IsActive:     u.IsActive,
	}
}
