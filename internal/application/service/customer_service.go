package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/pkg/apperror"
	"github.com/shopmate/shopmate-api/pkg/pagination"
)

// CustomerService handles customer operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create/update customer input
type CustomerInput struct {
	ShopID   uuid.UUID
	FullName string
	Phone    string
	Email    *string
	Address  *string
}

// CreateCustomer creates a new customer. Phone numbers are unique per shop.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, apperror.NewBadRequestError("Phone number is required")
	}

	existing, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A customer with this phone number already exists")
	}

	customer := &entity.Customer{
		ShopID:   input.ShopID,
		FullName: input.FullName,
		Phone:    phone,
		Email:    input.Email,
		Address:  input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetOrCreateByPhone finds a customer by phone or creates one on the fly.
// Sale creation uses this so the cashier never has to register customers
// separately.
func (s *CustomerService) GetOrCreateByPhone(ctx context.Context, shopID uuid.UUID, name, phone string) (*entity.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}

	existing, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if strings.TrimSpace(name) == "" {
		name = "Walk-in customer"
	}
	customer := &entity.Customer{
		ShopID:   shopID,
		FullName: name,
		Phone:    phone,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer updates a customer's details
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if phone := strings.TrimSpace(input.Phone); phone != "" && phone != customer.Phone {
		existing, err := s.customerRepo.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, apperror.NewConflictError("A customer with this phone number already exists")
		}
		customer.Phone = phone
	}
	if input.FullName != "" {
		customer.FullName = input.FullName
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
