package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	infracache "app/internal/infra/cache"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(subject string, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（コンテナでは環境変数直渡し）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//在庫ステータスキャッシュ（REDIS_ADDRが空ならなし）
	var invCache repository.InventoryStatusCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		invCache = infracache.NewRedisInventoryStatusCache(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	}

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg.AdminEmail, cfg.AdminPasswordHash, usecase.NewBcryptPasswordVerifier(), issuer)
	customerUC := usecase.NewCustomerUsecase(customerRepo)
	productUC := usecase.NewProductUsecase(productRepo, txManager, invCache)
	inventoryUC := usecase.NewInventoryUsecase(productRepo, invCache)
	orderUC := usecase.NewOrderUsecase(txManager, invCache)
	bulkOrderUC := usecase.NewBulkOrderUsecase(txManager, orderUC)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, invCache)

	//Handler生成
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Customer:     handler.NewCustomerHandler(customerUC),
		Product:      handler.NewProductHandler(productUC),
		Inventory:    handler.NewInventoryHandler(inventoryUC),
		Order:        handler.NewOrderHandler(orderUC),
		BulkOrder:    handler.NewBulkOrderHandler(bulkOrderUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
	}

	//Server起動
	e := server.New(cfg, h)
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		log.Fatal(err)
	}
}
