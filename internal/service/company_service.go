package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

// 公司/地点模块错误
var (
	ErrCompanyNotFound  = errors.New("劳务公司不存在")
	ErrLocationNotFound = errors.New("工作地点不存在")
)

// CompanyService 劳务公司与工作地点管理
type CompanyService interface {
	CreateCompany(ctx context.Context, operatorID string, req dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetCompany(ctx context.Context, id string) (*dto.CompanyResponse, error)
	ListCompanies(ctx context.Context) ([]dto.CompanyResponse, error)
	UpdateCompany(ctx context.Context, operatorID, id string, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	DeleteCompany(ctx context.Context, operatorID, id string) error

	CreateLocation(ctx context.Context, operatorID string, req dto.CreateLocationRequest) (*dto.LocationResponse, error)
	GetLocation(ctx context.Context, id string) (*dto.LocationResponse, error)
	ListLocations(ctx context.Context) ([]dto.LocationResponse, error)
	UpdateLocation(ctx context.Context, operatorID, id string, req dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	DeleteLocation(ctx context.Context, operatorID, id string) error
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建公司服务实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

// ── 劳务公司 ──

func (s *companyService) CreateCompany(ctx context.Context, operatorID string, req dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	company := &model.Company{Name: req.Name, VatNumber: req.VatNumber}
	company.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.Company.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (s *companyService) GetCompany(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (s *companyService) ListCompanies(ctx context.Context) ([]dto.CompanyResponse, error) {
	companies, err := s.repo.Company.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, *toCompanyResponse(&companies[i]))
	}
	return out, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, operatorID, id string, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		company.Name = req.Name
	}
	if req.VatNumber != "" {
		company.VatNumber = req.VatNumber
	}
	company.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.Company.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (s *companyService) DeleteCompany(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.Company.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCompanyNotFound
		}
		return err
	}
	return s.repo.Company.Delete(ctx, id, operatorID)
}

// ── 工作地点 ──

func (s *companyService) CreateLocation(ctx context.Context, operatorID string, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	location := &model.Location{Name: req.Name, Address: req.Address}
	location.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.Location.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

func (s *companyService) GetLocation(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return toLocationResponse(location), nil
}

func (s *companyService) ListLocations(ctx context.Context) ([]dto.LocationResponse, error) {
	locations, err := s.repo.Location.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		out = append(out, *toLocationResponse(&locations[i]))
	}
	return out, nil
}

func (s *companyService) UpdateLocation(ctx context.Context, operatorID, id string, req dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		location.Name = req.Name
	}
	if req.Address != "" {
		location.Address = req.Address
	}
	location.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.Location.Update(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

func (s *companyService) DeleteLocation(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.Location.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrLocationNotFound
		}
		return err
	}
	return s.repo.Location.Delete(ctx, id, operatorID)
}

func toCompanyResponse(company *model.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		CompanyID: company.CompanyID,
		Name:      company.Name,
		VatNumber: company.VatNumber,
		CreatedAt: company.CreatedAt.Format(time.RFC3339),
	}
}

func toLocationResponse(location *model.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		LocationID: location.LocationID,
		Name:       location.Name,
		Address:    location.Address,
		CreatedAt:  location.CreatedAt.Format(time.RFC3339),
	}
}
