package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"
)

type CustomerUsecase struct {
	customerRepo repo.CustomerRepository
}

func NewCustomerUsecase(customerRepo repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{customerRepo: customerRepo}
}

type RegisterCustomerInput struct {
	Name                   string
	Email                  string
	DefaultShippingAddress string
	Phone                  string
}

// Registerは初回接触時の顧客登録
func (u *CustomerUsecase) Register(ctx context.Context, in RegisterCustomerInput) (model.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	//emailは任意。あるなら形式と重複をチェック
	email := strings.TrimSpace(in.Email)
	var emailPtr *string
	if email != "" {
		if !validator.Email(email) {
			return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid email")
		}
		if _, err := u.customerRepo.FindByEmail(ctx, email); err == nil {
			return model.Customer{}, NewHTTPError(http.StatusConflict, "email already used")
		} else if err != repo.ErrNotFound {
			return model.Customer{}, &PersistenceError{Err: err}
		}
		emailPtr = &email
	}

	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !validator.Phone(phone) {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid phone")
	}

	now := time.Now()
	c, err := u.customerRepo.Create(ctx, model.Customer{
		Name:                   name,
		Email:                  emailPtr,
		DefaultShippingAddress: strings.TrimSpace(in.DefaultShippingAddress),
		Phone:                  phone,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
	if err != nil {
		return model.Customer{}, &PersistenceError{Err: err}
	}
	return c, nil
}

func (u *CustomerUsecase) Get(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.customerRepo.FindByID(ctx, customerID)
	if err == repo.ErrNotFound {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Customer{}, &PersistenceError{Err: err}
	}
	return c, nil
}

type UpdateCustomerContactInput struct {
	Name                   *string
	Email                  *string
	DefaultShippingAddress *string
	Phone                  *string
}

// UpdateContactは連絡先フィールドだけ更新する。identity（ID）は不変
func (u *CustomerUsecase) UpdateContact(ctx context.Context, customerID int64, in UpdateCustomerContactInput) (model.Customer, error) {
	c, err := u.Get(ctx, customerID)
	if err != nil {
		return model.Customer{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > 100 {
			return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid name")
		}
		c.Name = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			c.Email = nil
		} else {
			if !validator.Email(email) {
				return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid email")
			}
			if existing, err := u.customerRepo.FindByEmail(ctx, email); err == nil && existing.ID != customerID {
				return model.Customer{}, NewHTTPError(http.StatusConflict, "email already used")
			} else if err != nil && err != repo.ErrNotFound {
				return model.Customer{}, &PersistenceError{Err: err}
			}
			c.Email = &email
		}
	}
	if in.DefaultShippingAddress != nil {
		c.DefaultShippingAddress = strings.TrimSpace(*in.DefaultShippingAddress)
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone != "" && !validator.Phone(phone) {
			return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid phone")
		}
		c.Phone = phone
	}

	c.UpdatedAt = time.Now()
	if err := u.customerRepo.Update(ctx, c); err != nil {
		if err == repo.ErrNotFound {
			return model.Customer{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Customer{}, &PersistenceError{Err: err}
	}
	return c, nil
}
