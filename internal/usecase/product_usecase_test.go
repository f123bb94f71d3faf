package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductMocks() (*TxManagerMock, *ProductRepoMock, *InventoryRepoMock, *AuditLogRepoMock) {
	tx := new(TxManagerMock)
	products := new(ProductRepoMock)
	inv := new(InventoryRepoMock)
	audit := new(AuditLogRepoMock)
	tx.Repos = &TxReposMock{products: products, inventory: inv, auditLogs: audit}
	return tx, products, inv, audit
}

func TestAdminCreateProduct_InvalidName(t *testing.T) {
	tx, products, _, _ := newProductMocks()
	uc := usecase.NewProductUsecase(products, tx, nil)

	_, err := uc.AdminCreateProduct(context.Background(), "admin@example.com", usecase.AdminCreateProductInput{
		Name:  "   ",
		Price: price("100"),
	})
	assertErrContains(t, err, "invalid name")
}

func TestAdminCreateProduct_NegativePrice(t *testing.T) {
	tx, products, _, _ := newProductMocks()
	uc := usecase.NewProductUsecase(products, tx, nil)

	_, err := uc.AdminCreateProduct(context.Background(), "admin@example.com", usecase.AdminCreateProductInput{
		Name:  "Widget",
		Price: price("-1"),
	})
	assertErrContains(t, err, "price must be >= 0")
}

func TestAdminCreateProduct_Success_WritesAuditLog(t *testing.T) {
	tx, products, _, audit := newProductMocks()
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Widget" && p.InventoryCount == 10 && p.MinStockLevel == 5
	})).Return(model.Product{ID: 7, Name: "Widget", Price: price("100"), InventoryCount: 10, MinStockLevel: 5}, nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == "product.create" && l.TargetID == 7
	})).Return(nil)

	uc := usecase.NewProductUsecase(products, tx, nil)

	p, err := uc.AdminCreateProduct(context.Background(), "admin@example.com", usecase.AdminCreateProductInput{
		Name:           "Widget",
		Price:          price("100"),
		InventoryCount: 10,
		MinStockLevel:  5,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	audit.AssertExpectations(t)
}

func TestAdminUpdateProduct_PriceChange_InvalidatesCache(t *testing.T) {
	tx, products, _, audit := newProductMocks()
	cache := new(CacheMock)
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Widget", Price: price("100"), MinStockLevel: 5,
	}, nil)
	products.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Price.Equal(price("120"))
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything, []int64{7}).Return(nil)

	uc := usecase.NewProductUsecase(products, tx, cache)

	newPrice := price("120")
	p, err := uc.AdminUpdateProduct(context.Background(), "admin@example.com", 7, usecase.AdminUpdateProductInput{
		Price: &newPrice,
	})

	assert.NoError(t, err)
	assert.True(t, p.Price.Equal(price("120")))
	cache.AssertExpectations(t)
}

func TestAdminSetStock_ReasonRequired(t *testing.T) {
	tx, products, _, _ := newProductMocks()
	uc := usecase.NewProductUsecase(products, tx, nil)

	err := uc.AdminSetStock(context.Background(), "admin@example.com", 7, usecase.AdminSetStockInput{NewStock: 20})
	assertErrContains(t, err, "reason is required")
}

func TestAdminSetStock_Success_RecordsAdjustmentDelta(t *testing.T) {
	tx, products, inv, audit := newProductMocks()
	cache := new(CacheMock)
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Widget", InventoryCount: 4,
	}, nil)
	inv.On("SetStock", mock.Anything, int64(7), int64(20)).Return(nil)
	inv.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.ProductID == 7 && a.Delta == 16 && a.Reason == "restock"
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == "inventory.set"
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, []int64{7}).Return(nil)

	uc := usecase.NewProductUsecase(products, tx, cache)

	err := uc.AdminSetStock(context.Background(), "admin@example.com", 7, usecase.AdminSetStockInput{
		NewStock: 20,
		Reason:   "restock",
	})

	assert.NoError(t, err)
	inv.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProductNotFound(t *testing.T) {
	tx, products, _, _ := newProductMocks()
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewProductUsecase(products, tx, nil)

	_, err := uc.Get(context.Background(), 99)
	assertErrContains(t, err, "not found")
}
