package usecase_test

import (
	"context"
	"errors"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBulkMocks() (*TxManagerMock, *ProductRepoMock) {
	tx := new(TxManagerMock)
	products := new(ProductRepoMock)
	tx.Repos = &TxReposMock{products: products}
	return tx, products
}

func TestBulkValidate_EmptyItems(t *testing.T) {
	tx, _ := newBulkMocks()
	uc := usecase.NewBulkOrderUsecase(tx, usecase.NewOrderUsecase(tx, nil))

	_, err := uc.Validate(context.Background(), nil)

	var ie *usecase.InvalidItemError
	assert.True(t, errors.As(err, &ie))
}

func TestBulkValidate_MixedResults(t *testing.T) {
	tx, products := newBulkMocks()
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Widget", Price: price("100"), InventoryCount: 50, MinStockLevel: 5,
	}, nil)
	products.On("FindByID", mock.Anything, int64(8)).Return(model.Product{
		ID: 8, Name: "Gadget", Price: price("50"), InventoryCount: 2, MinStockLevel: 5,
	}, nil)
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewBulkOrderUsecase(tx, usecase.NewOrderUsecase(tx, nil))

	results, err := uc.Validate(context.Background(), []usecase.BulkOrderItemInput{
		{ProductID: 7, Quantity: 10},
		{ProductID: 8, Quantity: 5},
		{ProductID: 99, Quantity: 1},
	})

	assert.NoError(t, err)
	if assert.Equal(t, 3, len(results)) {
		assert.True(t, results[0].OK)
		assert.False(t, results[0].LowStockWarning)

		assert.False(t, results[1].OK)
		assert.Equal(t, int64(2), results[1].Available)

		assert.False(t, results[2].OK)
		assert.Equal(t, "product not found", results[2].Message)
	}
}

func TestBulkValidate_LowStockIsWarningNotRejection(t *testing.T) {
	tx, products := newBulkMocks()
	tx.On("WithinTx", mock.Anything).Return(nil)

	//注文後に在庫4（min 5以下）まで落ちるが、注文自体は通る
	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Widget", Price: price("100"), InventoryCount: 10, MinStockLevel: 5,
	}, nil)

	uc := usecase.NewBulkOrderUsecase(tx, usecase.NewOrderUsecase(tx, nil))

	results, err := uc.Validate(context.Background(), []usecase.BulkOrderItemInput{
		{ProductID: 7, Quantity: 6},
	})

	assert.NoError(t, err)
	assert.True(t, results[0].OK)
	assert.True(t, results[0].LowStockWarning)
}

func TestBulkPlanSplit_PartialAvailability(t *testing.T) {
	tx, products := newBulkMocks()
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Widget", Price: price("100"), InventoryCount: 5, MinStockLevel: 2,
	}, nil)

	uc := usecase.NewBulkOrderUsecase(tx, usecase.NewOrderUsecase(tx, nil))

	plan, err := uc.PlanSplit(context.Background(), []usecase.BulkOrderItemInput{
		{ProductID: 7, Quantity: 8},
	})

	assert.NoError(t, err)
	if assert.Equal(t, 1, len(plan.Available)) {
		assert.Equal(t, int64(5), plan.Available[0].Quantity)
	}
	if assert.Equal(t, 1, len(plan.Backorder)) {
		assert.Equal(t, int64(3), plan.Backorder[0].Quantity)
	}
}

func TestBulkPlanSplit_DuplicateLinesConsumeSharedStock(t *testing.T) {
	tx, products := newBulkMocks()
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Widget", Price: price("100"), InventoryCount: 4, MinStockLevel: 2,
	}, nil)

	uc := usecase.NewBulkOrderUsecase(tx, usecase.NewOrderUsecase(tx, nil))

	//1行目が3消費→2行目は残り1だけ出せる
	plan, err := uc.PlanSplit(context.Background(), []usecase.BulkOrderItemInput{
		{ProductID: 7, Quantity: 3},
		{ProductID: 7, Quantity: 3},
	})

	assert.NoError(t, err)
	if assert.Equal(t, 2, len(plan.Available)) {
		assert.Equal(t, int64(3), plan.Available[0].Quantity)
		assert.Equal(t, int64(1), plan.Available[1].Quantity)
	}
	if assert.Equal(t, 1, len(plan.Backorder)) {
		assert.Equal(t, int64(2), plan.Backorder[0].Quantity)
	}
}

func TestBulkPlaceAvailable_NothingAvailable_PlacesNoOrder(t *testing.T) {
	tx, products := newBulkMocks()
	orders := new(OrderRepoMock)
	tx.Repos = &TxReposMock{products: products, orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Name: "Widget", Price: price("100"), InventoryCount: 0, MinStockLevel: 2,
	}, nil)

	uc := usecase.NewBulkOrderUsecase(tx, usecase.NewOrderUsecase(tx, nil))

	out, err := uc.PlaceAvailable(context.Background(), 1, []usecase.BulkOrderItemInput{
		{ProductID: 7, Quantity: 3},
	}, "123 Main St Springfield", "", "")

	assert.NoError(t, err)
	assert.Nil(t, out.Order)
	assert.Equal(t, 1, len(out.Backorder))

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
