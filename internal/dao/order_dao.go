package dao

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"paypal-order-api/internal/dal"
	"paypal-order-api/internal/model"
)

// identity columns that no update may touch. Capture and sync mutate
// order state, never order identity.
var protectedOrderFields = []string{"id", "paypal_order_id"}

type OrderFilter struct {
	CustomerID *uint64
	PayerID    *string
	Status     *string
	Intent     *string
	IsActive   *bool
}

type OrderDao struct {
	DB *gorm.DB
}

func NewOrderDao() *OrderDao {
	if dal.DB == nil {
		log.Panic("[FATAL] dal.DB is nil - database not initialized")
	}
	return &OrderDao{DB: dal.DB}
}

func NewOrderDaoWithDB(db *gorm.DB) *OrderDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &OrderDao{DB: db}
}

func (r *OrderDao) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

func (r *OrderDao) Insert(o *model.Order) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert order failed: %w", err)
	}
	if o.Status == "" {
		o.Status = model.OrderStatusCreated
	}
	return r.DB.Create(o).Error
}

func (r *OrderDao) GetByID(id uint64) (*model.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by id failed: %w", err)
	}
	var m model.Order
	err := r.DB.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *OrderDao) GetByPayPalOrderID(paypalOrderID string) (*model.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by paypal order id failed: %w", err)
	}
	var m model.Order
	err := r.DB.Where("paypal_order_id = ?", paypalOrderID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *OrderDao) GetByReferenceID(referenceID string) (*model.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by reference id failed: %w", err)
	}
	var m model.Order
	err := r.DB.Where("reference_id = ?", referenceID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// List applies the filter, counts the full predicate, then pages. Newest
// first.
func (r *OrderDao) List(f OrderFilter, skip, limit int) ([]model.Order, int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, 0, fmt.Errorf("list orders failed: %w", err)
	}

	q := r.DB.Model(&model.Order{})
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.PayerID != nil {
		q = q.Where("payer_id = ?", *f.PayerID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Intent != nil {
		q = q.Where("intent = ?", *f.Intent)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	var out []model.Order
	if err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, fmt.Errorf("find failed: %w", err)
	}
	return out, total, nil
}

// UpdateByID writes the given fields in one transaction, returning the
// refreshed row. Identity fields are stripped from the set before writing.
func (r *OrderDao) UpdateByID(id uint64, fields map[string]any) (*model.Order, error) {
	return r.update("id = ?", id, fields)
}

// UpdateByPayPalID is UpdateByID keyed on the provider order id.
func (r *OrderDao) UpdateByPayPalID(paypalOrderID string, fields map[string]any) (*model.Order, error) {
	return r.update("paypal_order_id = ?", paypalOrderID, fields)
}

func (r *OrderDao) update(cond string, key any, fields map[string]any) (*model.Order, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("update order failed: %w", err)
	}
	for _, k := range protectedOrderFields {
		delete(fields, k)
	}
	if len(fields) == 0 {
		return nil, errors.New("update order failed: no updatable fields")
	}

	var m model.Order
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(cond, key).First(&m).Error; err != nil {
			return err
		}
		if err := tx.Model(&m).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where(cond, key).First(&m).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}
	return &m, nil
}

// SoftDelete flips the active flag; the row stays.
func (r *OrderDao) SoftDelete(id uint64) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("soft delete failed: %w", err)
	}
	res := r.DB.Model(&model.Order{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return false, fmt.Errorf("soft delete failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the row permanently. Administrative use only.
func (r *OrderDao) Delete(id uint64) (bool, error) {
	if err := r.checkDB(); err != nil {
		return false, fmt.Errorf("delete failed: %w", err)
	}
	res := r.DB.Where("id = ?", id).Delete(&model.Order{})
	if res.Error != nil {
		return false, fmt.Errorf("delete failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CountByStatus reports active-order counts per status.
func (r *OrderDao) CountByStatus() (map[string]int64, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("count by status failed: %w", err)
	}
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.DB.Model(&model.Order{}).
		Select("status, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count by status failed: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
