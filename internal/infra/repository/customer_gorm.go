package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", customerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// 連絡先フィールドのみ更新する
func (r *CustomerGormRepository) Update(ctx context.Context, c model.Customer) error {
	res := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":                     c.Name,
			"email":                    c.Email,
			"default_shipping_address": c.DefaultShippingAddress,
			"phone":                    c.Phone,
			"updated_at":               c.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
