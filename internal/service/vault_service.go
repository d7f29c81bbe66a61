package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"paypal-order-api/internal/dao"
	"paypal-order-api/internal/dto"
	"paypal-order-api/internal/idgen"
	"paypal-order-api/internal/model"
)

// VaultService mirrors provider payment tokens locally. The tokens are
// created on the provider side (setup-token flows are out of scope); this
// service only records, lists, and retires them.
type VaultService struct {
	vault *dao.VaultDao
	log   *logrus.Logger
}

func NewVaultService(vault *dao.VaultDao) *VaultService {
	return &VaultService{vault: vault, log: logrus.StandardLogger()}
}

// Record stores a token the provider already vaulted. Re-recording an
// existing token returns the known row unchanged.
func (s *VaultService) Record(req *dto.VaultPaymentMethodCreateRequest) (*dto.VaultPaymentMethodResponse, error) {
	existing, err := s.vault.GetByTokenID(req.PayPalPaymentTokenID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return shapeVaultPaymentMethod(existing), nil
	}

	v := &model.VaultPaymentMethod{
		ID:                   idgen.New(),
		CustomerID:           req.CustomerID,
		PayPalPaymentTokenID: req.PayPalPaymentTokenID,
		PaymentSourceType:    req.PaymentSourceType,
		UsageType:            req.UsageType,
		CustomerType:         req.CustomerType,
		PayerID:              strOrNil(req.PayerID),
		PayPalStatus:         strOrNil(req.PayPalStatus),
		IsActive:             true,
	}
	if v.UsageType == "" {
		v.UsageType = "MERCHANT"
	}
	if v.CustomerType == "" {
		v.CustomerType = "CONSUMER"
	}
	if req.Links != nil {
		v.PayPalLinks = mustJSON(req.Links)
	}
	if err := s.vault.Insert(v); err != nil {
		return nil, fmt.Errorf("persist payment method %s: %w", req.PayPalPaymentTokenID, err)
	}
	return shapeVaultPaymentMethod(v), nil
}

func (s *VaultService) GetByTokenID(paypalPaymentTokenID string) (*dto.VaultPaymentMethodResponse, error) {
	v, err := s.vault.GetByTokenID(paypalPaymentTokenID)
	if err != nil || v == nil {
		return nil, err
	}
	return shapeVaultPaymentMethod(v), nil
}

func (s *VaultService) ListByCustomer(customerID uint64) (*dto.VaultPaymentMethodListResponse, error) {
	rows, total, err := s.vault.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := &dto.VaultPaymentMethodListResponse{
		PaymentMethods: make([]dto.VaultPaymentMethodResponse, 0, len(rows)),
		TotalItems:     total,
	}
	for i := range rows {
		out.PaymentMethods = append(out.PaymentMethods, *shapeVaultPaymentMethod(&rows[i]))
	}
	return out, nil
}

func (s *VaultService) Deactivate(id uint64) (bool, error) {
	return s.vault.SoftDelete(id)
}

func shapeVaultPaymentMethod(v *model.VaultPaymentMethod) *dto.VaultPaymentMethodResponse {
	var resp dto.VaultPaymentMethodResponse
	if err := copier.Copy(&resp, v); err != nil {
		logrus.WithError(err).Warn("payment method shaping failed")
	}
	return &resp
}
