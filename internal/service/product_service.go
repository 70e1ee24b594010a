package service

import (
	"errors"
	"fmt"

	"go-admin-portal/internal/model"
	"go-admin-portal/internal/repository"
	"go-admin-portal/pkg/validator"
)

var (
	ErrProductExists   = errors.New("product code or name already exists")
	ErrProductNotFound = errors.New("product not found")
)

type ProductService interface {
	GetProducts(limit, offset int, nameFilter string) (*ProductList, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(req *ProductRequest) (*model.Product, error)
	UpdateProduct(id uint, req *ProductRequest) (*model.Product, error)
	DeleteProduct(id uint) error
}

type ProductRequest struct {
	Code string `json:"code" validate:"required,max=8"`
	Name string `json:"name" validate:"required"`
}

type ProductList struct {
	Total int64           `json:"total"`
	Items []model.Product `json:"items"`
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) GetProducts(limit, offset int, nameFilter string) (*ProductList, error) {
	products, total, err := s.productRepo.FindAll(limit, offset, nameFilter)
	if err != nil {
		return nil, err
	}
	return &ProductList{Total: total, Items: products}, nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	p, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *productService) CreateProduct(req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.productRepo.FindByCode(req.Code)
	if existing != nil {
		return nil, ErrProductExists
	}

	product := &model.Product{Code: req.Code, Name: req.Name}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(id uint, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Code != product.Code {
		existing, _ := s.productRepo.FindByCode(req.Code)
		if existing != nil {
			return nil, ErrProductExists
		}
	}

	product.Code = req.Code
	product.Name = req.Name
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}
