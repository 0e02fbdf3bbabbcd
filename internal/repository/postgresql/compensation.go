package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/compensation"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/database"
)

type compensationRepository struct {
	db *database.DB
}

func NewCompensationRepository(db *database.DB) compensation.CompensationRepository {
	return &compensationRepository{db: db}
}

const compensationColumns = `
	id, organization_id, employee_id, basic_salary, allowance, salary_type,
	regular_holiday_percent, special_holiday_percent, bank_name, bank_account_number,
	created_at, updated_at
`

func (r *compensationRepository) GetByEmployeeID(ctx context.Context, employeeID string, organizationID string) (compensation.Profile, error) {
	q := GetQuerier(ctx, r.db)

	profile, err := scanProfile(q.QueryRow(ctx, `
		SELECT `+compensationColumns+`
		FROM compensation_profiles
		WHERE employee_id = $1 AND organization_id = $2
	`, employeeID, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return compensation.Profile{}, compensation.ErrProfileNotFound
		}
		return compensation.Profile{}, fmt.Errorf("failed to get compensation profile: %w", err)
	}
	return profile, nil
}

func (r *compensationRepository) Upsert(ctx context.Context, profile compensation.Profile) (compensation.Profile, error) {
	q := GetQuerier(ctx, r.db)

	if profile.BasicSalary.IsNegative() {
		return compensation.Profile{}, compensation.ErrNegativeSalary
	}
	if profile.Allowance.IsNegative() {
		return compensation.Profile{}, compensation.ErrNegativeAllowance
	}
	if !profile.SalaryType.Valid() {
		return compensation.Profile{}, compensation.ErrInvalidSalaryType
	}

	query := `
		INSERT INTO compensation_profiles (
			id, organization_id, employee_id, basic_salary, allowance, salary_type,
			regular_holiday_percent, special_holiday_percent, bank_name, bank_account_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (organization_id, employee_id) DO UPDATE SET
			basic_salary = EXCLUDED.basic_salary,
			allowance = EXCLUDED.allowance,
			salary_type = EXCLUDED.salary_type,
			regular_holiday_percent = EXCLUDED.regular_holiday_percent,
			special_holiday_percent = EXCLUDED.special_holiday_percent,
			bank_name = EXCLUDED.bank_name,
			bank_account_number = EXCLUDED.bank_account_number,
			updated_at = NOW()
		RETURNING ` + compensationColumns

	saved, err := scanProfile(q.QueryRow(ctx, query,
		profile.ID, profile.OrganizationID, profile.EmployeeID,
		profile.BasicSalary, profile.Allowance, profile.SalaryType,
		nullDecimal(profile.RegularHolidayPercent), nullDecimal(profile.SpecialHolidayPercent),
		profile.BankName, profile.BankAccountNumber,
	))
	if err != nil {
		return compensation.Profile{}, fmt.Errorf("failed to upsert compensation profile: %w", err)
	}
	return saved, nil
}

func scanProfile(row pgx.Row) (compensation.Profile, error) {
	var p compensation.Profile
	var regularHoliday, specialHoliday decimal.NullDecimal

	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.EmployeeID, &p.BasicSalary, &p.Allowance, &p.SalaryType,
		&regularHoliday, &specialHoliday, &p.BankName, &p.BankAccountNumber,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return compensation.Profile{}, err
	}

	p.RegularHolidayPercent = decimalPtr(regularHoliday)
	p.SpecialHolidayPercent = decimalPtr(specialHoliday)
	return p, nil
}
