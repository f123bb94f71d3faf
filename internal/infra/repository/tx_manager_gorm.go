package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	customers  repo.CustomerRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	auditLogs  repo.AuditLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) Customers() repo.CustomerRepository   { return r.customers }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorならgormがrollbackする。途中の在庫減算も全部巻き戻る。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
			customers:  NewCustomerGormRepository(tx),
			products:   NewProductGormRepository(tx),
			inventory:  NewInventoryGormRepository(tx),
			auditLogs:  NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
