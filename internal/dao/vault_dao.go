package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"paypal-order-api/internal/dal"
	"paypal-order-api/internal/model"
)

type VaultDao struct {
	DB *gorm.DB
}

func NewVaultDao() *VaultDao {
	if dal.DB == nil {
		log.Panic("[FATAL] dal.DB is nil - database not initialized")
	}
	return &VaultDao{DB: dal.DB}
}

func NewVaultDaoWithDB(db *gorm.DB) *VaultDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &VaultDao{DB: db}
}

func (r *VaultDao) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

func (r *VaultDao) Insert(v *model.VaultPaymentMethod) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert payment method failed: %w", err)
	}
	return r.DB.Create(v).Error
}

func (r *VaultDao) GetByID(id uint64) (*model.VaultPaymentMethod, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get payment method failed: %w", err)
	}
	var m model.VaultPaymentMethod
	err := r.DB.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *VaultDao) GetByTokenID(paypalPaymentTokenID string) (*model.VaultPaymentMethod, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get payment method failed: %w", err)
	}
	var m model.VaultPaymentMethod
	err := r.DB.Where("paypal_payment_token_id = ?", paypalPaymentTokenID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *VaultDao) ListByCustomer(customerID uint64) ([]model.VaultPaymentMethod, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("list payment methods failed: %w", err)
	}
	q := r.DB.Model(&model.VaultPaymentMethod{}).
		Where("customer_id = ? AND is_active = ?", customerID, true)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}
	var out []model.VaultPaymentMethod
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("find failed: %w", err)
	}
	return out, total, nil
}

func (r *VaultDao) SoftDelete(id uint64) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("soft delete failed: %w", err)
	}
	now := time.Now()
	res := r.DB.Model(&model.VaultPaymentMethod{}).Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "deleted_at": &now})
	if res.Error != nil {
		return false, fmt.Errorf("soft delete failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
