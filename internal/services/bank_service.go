package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/ClaireRuysschaert/BudgetMate/internal/errors"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/strutil"
)

// bankService handles bank brand and bank account business logic.
type bankService struct {
	db *gorm.DB
}

// NewBankService creates a new BankServicer.
func NewBankService(db *gorm.DB) BankServicer {
	return &bankService{db: db}
}

// CreateBankBrand creates a bank brand, or returns the existing one with
// the same name. Brand names are the dispatch key for statement formats, so
// they are normalized before storage.
func (s *bankService) CreateBankBrand(name string) (*models.BankBrand, error) {
	name = strutil.CollapseSpaces(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bank brand name is required")
	}

	var brand models.BankBrand
	err := s.db.Where("name = ?", name).First(&brand).Error
	if err == nil {
		return &brand, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	brand = models.BankBrand{Name: name}
	if err := s.db.Create(&brand).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &brand, nil
}

// GetBankBrands lists all bank brands.
func (s *bankService) GetBankBrands() ([]models.BankBrand, error) {
	var brands []models.BankBrand
	if err := s.db.Order("name").Find(&brands).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return brands, nil
}

// CreateBankAccount creates a bank account for a user at a bank brand.
func (s *bankService) CreateBankAccount(userID, bankBrandID uint, accountNumber, description string) (*models.BankAccount, error) {
	if accountNumber == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account number is required")
	}

	var brand models.BankBrand
	if err := s.db.First(&brand, bankBrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankBrandNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account := &models.BankAccount{
		AccountNumber: accountNumber,
		BankBrandID:   bankBrandID,
		UserID:        userID,
		Description:   description,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	account.BankBrand = brand
	return account, nil
}

// GetUserBankAccounts lists a user's bank accounts with their brands.
func (s *bankService) GetUserBankAccounts(userID uint) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := s.db.Preload("BankBrand").Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetBankAccountByID retrieves a bank account by ID for a specific user.
func (s *bankService) GetBankAccountByID(userID, bankAccountID uint) (*models.BankAccount, error) {
	var account models.BankAccount
	err := s.db.Preload("BankBrand").
		Where("id = ? AND user_id = ?", bankAccountID, userID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}
