package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"paypal-order-api/internal/constant"
	"paypal-order-api/internal/dao"
	"paypal-order-api/internal/dto"
	"paypal-order-api/internal/idgen"
	"paypal-order-api/internal/model"
)

// CustomerService manages the local customer mirror. Provider customer
// ids come from PayPal; this service never calls out.
type CustomerService struct {
	customers *dao.CustomerDao
	log       *logrus.Logger
}

func NewCustomerService(customers *dao.CustomerDao) *CustomerService {
	return &CustomerService{customers: customers, log: logrus.StandardLogger()}
}

func (s *CustomerService) Create(req *dto.CustomerCreateRequest) (*dto.CustomerResponse, error) {
	existing, err := s.customers.GetByPayPalCustomerID(req.PayPalCustomerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, constant.NewError(constant.CodeCustomerAlreadyExists)
	}

	c := &model.Customer{
		ID:               idgen.New(),
		PayPalCustomerID: req.PayPalCustomerID,
		EmailAddress:     req.EmailAddress,
		GivenName:        strOrNil(req.GivenName),
		Surname:          strOrNil(req.Surname),
		PhoneNumber:      strOrNil(req.PhoneNumber),
		IsActive:         true,
	}
	if req.ShippingAddress != nil {
		c.DefaultShippingAddress = mustJSON(req.ShippingAddress)
	}
	if err := s.customers.Insert(c); err != nil {
		return nil, fmt.Errorf("persist customer %s: %w", req.PayPalCustomerID, err)
	}
	return shapeCustomer(c), nil
}

// Get returns (nil, nil) for an unknown id.
func (s *CustomerService) Get(id uint64) (*dto.CustomerResponse, error) {
	c, err := s.customers.GetByID(id)
	if err != nil || c == nil {
		return nil, err
	}
	return shapeCustomer(c), nil
}

func (s *CustomerService) GetByEmail(email string) (*dto.CustomerResponse, error) {
	c, err := s.customers.GetByEmail(email)
	if err != nil || c == nil {
		return nil, err
	}
	return shapeCustomer(c), nil
}

func (s *CustomerService) List(page, pageSize int, isActive *bool) (*dto.CustomerListResponse, error) {
	skip := (page - 1) * pageSize
	rows, total, err := s.customers.List(skip, pageSize, isActive)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Customers:   make([]dto.CustomerResponse, 0, len(rows)),
		TotalItems:  total,
		TotalPages:  (total + int64(pageSize) - 1) / int64(pageSize),
		CurrentPage: page,
		PageSize:    pageSize,
	}
	for i := range rows {
		out.Customers = append(out.Customers, *shapeCustomer(&rows[i]))
	}
	return out, nil
}

func (s *CustomerService) Update(id uint64, req *dto.CustomerUpdateRequest) (*dto.CustomerResponse, error) {
	fields := map[string]any{}
	if req.EmailAddress != "" {
		fields["email_address"] = req.EmailAddress
	}
	if req.GivenName != "" {
		fields["given_name"] = req.GivenName
	}
	if req.Surname != "" {
		fields["surname"] = req.Surname
	}
	if req.PhoneNumber != "" {
		fields["phone_number"] = req.PhoneNumber
	}
	if req.ShippingAddress != nil {
		fields["default_shipping_address"] = mustJSON(req.ShippingAddress)
	}
	if len(fields) == 0 {
		return s.Get(id)
	}

	c, err := s.customers.UpdateByID(id, fields)
	if err != nil || c == nil {
		return nil, err
	}
	return shapeCustomer(c), nil
}

func (s *CustomerService) Deactivate(id uint64) (bool, error) {
	return s.customers.SoftDelete(id)
}

func shapeCustomer(c *model.Customer) *dto.CustomerResponse {
	var resp dto.CustomerResponse
	if err := copier.Copy(&resp, c); err != nil {
		logrus.WithError(err).Warn("customer shaping failed")
	}
	return &resp
}
