package compensation

import (
	"context"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/compensation"
)

type CompensationServiceImpl struct {
	compensationRepo compensation.CompensationRepository
}

func NewCompensationService(compensationRepo compensation.CompensationRepository) compensation.CompensationService {
	return &CompensationServiceImpl{compensationRepo: compensationRepo}
}

func (s *CompensationServiceImpl) GetProfile(ctx context.Context, organizationID, employeeID string) (compensation.ProfileResponse, error) {
	profile, err := s.compensationRepo.GetByEmployeeID(ctx, employeeID, organizationID)
	if err != nil {
		return compensation.ProfileResponse{}, err
	}
	return toProfileResponse(profile), nil
}

func (s *CompensationServiceImpl) UpsertProfile(ctx context.Context, organizationID string, req compensation.UpsertProfileRequest) (compensation.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return compensation.ProfileResponse{}, err
	}

	saved, err := s.compensationRepo.Upsert(ctx, compensation.Profile{
		OrganizationID:        organizationID,
		EmployeeID:            req.EmployeeID,
		BasicSalary:           req.BasicSalary,
		Allowance:             req.Allowance,
		SalaryType:            req.SalaryType,
		RegularHolidayPercent: req.RegularHolidayPercent,
		SpecialHolidayPercent: req.SpecialHolidayPercent,
		BankName:              req.BankName,
		BankAccountNumber:     req.BankAccountNumber,
	})
	if err != nil {
		return compensation.ProfileResponse{}, err
	}
	return toProfileResponse(saved), nil
}

func toProfileResponse(profile compensation.Profile) compensation.ProfileResponse {
	return compensation.ProfileResponse{
		ID:                    profile.ID,
		EmployeeID:            profile.EmployeeID,
		BasicSalary:           profile.BasicSalary,
		Allowance:             profile.Allowance,
		SalaryType:            profile.SalaryType,
		RegularHolidayPercent: profile.RegularHolidayPercent,
		SpecialHolidayPercent: profile.SpecialHolidayPercent,
		BankName:              profile.BankName,
		BankAccountNumber:     profile.BankAccountNumber,
	}
}
