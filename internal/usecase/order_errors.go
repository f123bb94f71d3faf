package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// 注文確定の失敗は型で呼び出し側（チャット層）に返す。
// ここではユーザー向け文言を作らない。リトライもしない。

type UnknownCustomerError struct {
	CustomerID int64
}

func (e *UnknownCustomerError) Error() string {
	return fmt.Sprintf("unknown customer %d", e.CustomerID)
}

type UnknownProductError struct {
	ProductID int64
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %d", e.ProductID)
}

// Indexは入力itemsの何番目が不正か
type InvalidItemError struct {
	Index  int
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid item at %d: %s", e.Index, e.Reason)
}

type MissingShippingAddressError struct {
	CustomerID int64
}

func (e *MissingShippingAddressError) Error() string {
	return fmt.Sprintf("no shipping address for customer %d", e.CustomerID)
}

// StockShortfallは不足1商品分の内訳。
// Requestedはリクエスト内の同一商品の合計数量。
type StockShortfall struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int64  `json:"requested"`
	Available   int64  `json:"available"`
}

// InsufficientStockErrorは不足した全商品を一度に持つ。
// 呼び出し側が二往復せずに減量提案を組めるようにするため。
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("product %d requested %d available %d", s.ProductID, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// PersistenceErrorはストレージ起因の失敗。リトライ判断は呼び出し側。
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// 既に型付きならそのまま、それ以外はPersistenceErrorに包む
func asPlacementError(err error) error {
	if err == nil {
		return nil
	}

	var (
		uc *UnknownCustomerError
		up *UnknownProductError
		ii *InvalidItemError
		ms *MissingShippingAddressError
		is *InsufficientStockError
		pe *PersistenceError
	)
	switch {
	case errors.As(err, &uc), errors.As(err, &up), errors.As(err, &ii),
		errors.As(err, &ms), errors.As(err, &is), errors.As(err, &pe):
		return err
	}
	return &PersistenceError{Err: err}
}
