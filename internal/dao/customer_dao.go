package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"paypal-order-api/internal/dal"
	"paypal-order-api/internal/model"
)

type CustomerDao struct {
	DB *gorm.DB
}

func NewCustomerDao() *CustomerDao {
	if dal.DB == nil {
		log.Panic("[FATAL] dal.DB is nil - database not initialized")
	}
	return &CustomerDao{DB: dal.DB}
}

func NewCustomerDaoWithDB(db *gorm.DB) *CustomerDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &CustomerDao{DB: db}
}

func (r *CustomerDao) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

func (r *CustomerDao) Insert(c *model.Customer) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert customer failed: %w", err)
	}
	return r.DB.Create(c).Error
}

func (r *CustomerDao) GetByID(id uint64) (*model.Customer, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	var m model.Customer
	err := r.DB.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *CustomerDao) GetByPayPalCustomerID(paypalCustomerID string) (*model.Customer, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	var m model.Customer
	err := r.DB.Where("paypal_customer_id = ?", paypalCustomerID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetByEmail returns the most recently created active customer for the
// address. Email is not unique across provider customers.
func (r *CustomerDao) GetByEmail(email string) (*model.Customer, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	var m model.Customer
	err := r.DB.Where("email_address = ? AND is_active = ?", email, true).
		Order("created_at DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *CustomerDao) List(skip, limit int, isActive *bool) ([]model.Customer, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("list customers failed: %w", err)
	}
	q := r.DB.Model(&model.Customer{})
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}
	var out []model.Customer
	if err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("find failed: %w", err)
	}
	return out, total, nil
}

func (r *CustomerDao) UpdateByID(id uint64, fields map[string]any) (*model.Customer, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("update customer failed: %w", err)
	}
	delete(fields, "id")
	delete(fields, "paypal_customer_id")
	if len(fields) == 0 {
		return nil, errors.New("update customer failed: no updatable fields")
	}

	var m model.Customer
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if err := tx.Model(&m).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&m).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}
	return &m, nil
}

func (r *CustomerDao) SoftDelete(id uint64) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("soft delete failed: %w", err)
	}
	res := r.DB.Model(&model.Customer{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return false, fmt.Errorf("soft delete failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
