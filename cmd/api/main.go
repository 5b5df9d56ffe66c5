package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"storefront/internal/cartengine"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/memory"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/security"
	"storefront/internal/infra/seed"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"
)

// bcrypt のコスト
const bcryptCost = 12

// 永続化まわりの部品
type stores struct {
	users    repository.UserRepository
	products repository.ProductRepository
	audit    repository.AuditLogRepository
	tx       repository.TransactionManager
	slots    repository.SlotStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	hasher := security.NewBcryptPasswordHasher(bcryptCost)
	seedHash, err := hasher.Hash(cfg.SeedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	st, err := openStores(ctx, cfg, seedHash, log)
	if err != nil {
		return err
	}

	//カートはセッションごとに1つ、保存先へ書き戻す
	carts, err := cartengine.NewRegistry(cfg.CartSessions, st.slots, log)
	if err != nil {
		return err
	}

	//usecaseに渡す部品
	idGen := security.UUIDGenerator{}
	clock := security.RealClock{}
	v := validator.New()
	issuer := security.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	//Usecase生成
	productUC := usecase.NewProductUsecase(st.products, st.users, log)
	cartUC := usecase.NewCartUsecase(carts, productUC, log)
	checkoutUC, err := usecase.NewCheckoutUsecase(carts, v, idGen, clock, cfg.CartSessions, log)
	if err != nil {
		return err
	}
	authUC := usecase.NewAuthUsecase(st.users, hasher, security.NewBcryptPasswordVerifier(), issuer, v, idGen, clock, log)
	sellerUC := usecase.NewSellerUsecase(st.tx, st.products, v, idGen, clock, log)
	adminUC := usecase.NewAdminUsecase(st.tx, st.users, st.products, st.audit, clock, log)

	//Handler生成
	secure := !cfg.IsDev()
	h := server.Handlers{
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC, secure),
		Checkout:     handler.NewCheckoutHandler(checkoutUC, secure),
		Auth:         handler.NewAuthHandler(authUC),
		Seller:       handler.NewSellerHandler(sellerUC),
		AdminUser:    handler.NewAdminUserHandler(adminUC),
		AdminProduct: handler.NewAdminProductHandler(adminUC),
	}

	//Server起動
	srv := server.New(server.Options{
		Addr:      cfg.Addr(),
		JWTSecret: cfg.JWTSecret,
		FEURL:     cfg.FEURL,
	}, st.users, h, log)

	return srv.Run(ctx)
}

func openStores(ctx context.Context, cfg config.Config, seedHash string, log *slog.Logger) (stores, error) {
	var st stores

	var gormDB *gorm.DB
	if cfg.NeedsPostgres() {
		var err error
		gormDB, err = db.Connect(cfg.DSN())
		if err != nil {
			return st, fmt.Errorf("connect db: %w", err)
		}
		if err := db.Migrate(gormDB); err != nil {
			return st, fmt.Errorf("migrate: %w", err)
		}
	}

	switch cfg.Storage {
	case config.StoragePostgres:
		seeded, err := db.SeedIfEmpty(ctx, gormDB, seed.Users(seedHash), seed.Products())
		if err != nil {
			return st, fmt.Errorf("seed: %w", err)
		}
		if seeded {
			log.Info("database seeded")
		}
		st.users = infraRepo.NewUserGormRepository(gormDB)
		st.products = infraRepo.NewProductGormRepository(gormDB)
		st.audit = infraRepo.NewAuditLogGormRepository(gormDB)
		st.tx = infraRepo.NewTxManagerGorm(gormDB)
	default:
		users := memory.NewUserStore(seed.Users(seedHash)...)
		products := memory.NewProductStore(seed.Products()...)
		audit := memory.NewAuditLogStore()
		st.users, st.products, st.audit = users, products, audit
		st.tx = memory.NewTxManager(users, products, audit)
	}

	switch cfg.CartStore {
	case config.StoragePostgres:
		st.slots = infraRepo.NewSlotGormRepository(gormDB)
	case config.StorageRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			//redis が無くてもカートはメモリで動かす
			log.Warn("redis unavailable, cart falls back to memory", slog.Any("err", err))
			st.slots = memory.NewSlotStore()
			break
		}
		st.slots = cache.NewRedisSlotStore(client, cfg.CartTTL)
	default:
		st.slots = memory.NewSlotStore()
	}

	log.Info("stores ready",
		slog.String("storage", cfg.Storage),
		slog.String("cart_store", cfg.CartStore),
	)
	return st, nil
}
