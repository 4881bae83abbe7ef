package services

import (
	"errors"
	"fmt"
	"strings"

	"lavapro-backend/models"

	"gorm.io/gorm"
)

// Pagination describes one page of a filtered listing.
type Pagination struct {
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	TotalItems  int64 `json:"total_items"`
}

// CreateCustomerInput carries the fields accepted on customer creation.
type CreateCustomerInput struct {
	Name        string  `json:"nome"`
	Phone       string  `json:"telefone"`
	Email       *string `json:"email"`
	Address     *string `json:"endereco"`
	Preferences *string `json:"preferencias"`
}

// UpdateCustomerInput uses pointers so unspecified fields keep their value.
type UpdateCustomerInput struct {
	Name        *string `json:"nome"`
	Phone       *string `json:"telefone"`
	Email       *string `json:"email"`
	Address     *string `json:"endereco"`
	Preferences *string `json:"preferencias"`
}

// CustomerDetail is a customer with its order history and notes, newest first.
type CustomerDetail struct {
	Customer models.Customer
	Orders   []models.Order
	Notes    []models.CustomerNote
}

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Create(input CreateCustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, validation("Nome e telefone são campos obrigatórios.")
	}

	if err := s.checkUnique(input.Phone, input.Email, 0); err != nil {
		return nil, err
	}

	customer := models.Customer{
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		Preferences: input.Preferences,
	}

	if err := s.db.Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &customer, nil
}

// List returns one page of customers, optionally narrowed by a
// case-insensitive substring match against name, phone or email.
func (s *CustomerService) List(search string, page, perPage int) ([]models.Customer, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	query := s.db.Model(&models.Customer{})
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(nome) LIKE ? OR LOWER(telefone) LIKE ? OR LOWER(email) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("count customers: %w", err)
	}

	var customers []models.Customer
	if err := query.Order("id").Limit(perPage).Offset((page - 1) * perPage).
		Find(&customers).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("list customers: %w", err)
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return customers, Pagination{TotalPages: pages, CurrentPage: page, TotalItems: total}, nil
}

func (s *CustomerService) Get(id uint) (*CustomerDetail, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cliente não encontrado.")
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	detail := CustomerDetail{Customer: customer}
	if err := s.db.Where("cliente_id = ?", id).Order("data_pedido DESC").
		Find(&detail.Orders).Error; err != nil {
		return nil, fmt.Errorf("customer orders: %w", err)
	}
	if err := s.db.Where("cliente_id = ?", id).Order("data_criacao DESC").
		Find(&detail.Notes).Error; err != nil {
		return nil, fmt.Errorf("customer notes: %w", err)
	}
	return &detail, nil
}

func (s *CustomerService) Update(id uint, input UpdateCustomerInput) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cliente não encontrado.")
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	phone := customer.Phone
	if input.Phone != nil {
		phone = *input.Phone
	}
	email := customer.Email
	if input.Email != nil {
		email = input.Email
	}
	if err := s.checkUnique(phone, email, customer.ID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Preferences != nil {
		customer.Preferences = input.Preferences
	}

	if err := s.db.Save(&customer).Error; err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return &customer, nil
}

// Delete removes the customer together with its notes, orders and any
// payments on those orders, in one transaction.
func (s *CustomerService) Delete(id uint) error {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Cliente não encontrado.")
		}
		return fmt.Errorf("get customer: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("cliente_id = ?", id).
			Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("pedido_id IN ?", orderIDs).
				Delete(&models.Payment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("cliente_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cliente_id = ?", id).Delete(&models.CustomerNote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
}

func (s *CustomerService) AddNote(customerID uint, text string) (*models.CustomerNote, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validation("O texto da anotação é obrigatório.")
	}

	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cliente não encontrado.")
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	note := models.CustomerNote{CustomerID: customerID, Text: text}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

func (s *CustomerService) DeleteNote(customerID, noteID uint) error {
	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Cliente não encontrado.")
		}
		return fmt.Errorf("get customer: %w", err)
	}

	var note models.CustomerNote
	if err := s.db.Where("id = ? AND cliente_id = ?", noteID, customerID).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Anotação não encontrada para este cliente.")
		}
		return fmt.Errorf("get note: %w", err)
	}
	return s.db.Delete(&note).Error
}

// checkUnique rejects a phone or email already registered to another
// customer. excludeID skips the customer being updated.
func (s *CustomerService) checkUnique(phone string, email *string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&models.Customer{}).
		Where("telefone = ? AND id <> ?", phone, excludeID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	if count > 0 {
		return conflict("Telefone ou e-mail já cadastrado.")
	}
	if email != nil && *email != "" {
		if err := s.db.Model(&models.Customer{}).
			Where("email = ? AND id <> ?", *email, excludeID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return conflict("Telefone ou e-mail já cadastrado.")
		}
	}
	return nil
}
