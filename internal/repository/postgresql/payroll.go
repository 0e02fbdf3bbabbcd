package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepository) GetSettings(ctx context.Context, organizationID string) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, night_diff_percent, regular_holiday_percent,
			   special_holiday_percent, overtime_regular_percent, overtime_rest_day_percent,
			   overtime_regular_holiday_percent, overtime_special_holiday_percent,
			   allowance_in_daily_rate, working_days_per_year, created_at, updated_at
		FROM payroll_settings
		WHERE organization_id = $1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query, organizationID).Scan(
		&s.ID, &s.OrganizationID, &s.NightDiffPercent, &s.RegularHolidayPercent,
		&s.SpecialHolidayPercent, &s.OvertimeRegularPercent, &s.OvertimeRestDayPercent,
		&s.OvertimeRegularHolidayPercent, &s.OvertimeSpecialHolidayPercent,
		&s.AllowanceInDailyRate, &s.WorkingDaysPerYear, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (
			organization_id, night_diff_percent, regular_holiday_percent,
			special_holiday_percent, overtime_regular_percent, overtime_rest_day_percent,
			overtime_regular_holiday_percent, overtime_special_holiday_percent,
			allowance_in_daily_rate, working_days_per_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (organization_id) DO UPDATE SET
			night_diff_percent = EXCLUDED.night_diff_percent,
			regular_holiday_percent = EXCLUDED.regular_holiday_percent,
			special_holiday_percent = EXCLUDED.special_holiday_percent,
			overtime_regular_percent = EXCLUDED.overtime_regular_percent,
			overtime_rest_day_percent = EXCLUDED.overtime_rest_day_percent,
			overtime_regular_holiday_percent = EXCLUDED.overtime_regular_holiday_percent,
			overtime_special_holiday_percent = EXCLUDED.overtime_special_holiday_percent,
			allowance_in_daily_rate = EXCLUDED.allowance_in_daily_rate,
			working_days_per_year = EXCLUDED.working_days_per_year,
			updated_at = NOW()
		RETURNING id, organization_id, night_diff_percent, regular_holiday_percent,
			special_holiday_percent, overtime_regular_percent, overtime_rest_day_percent,
			overtime_regular_holiday_percent, overtime_special_holiday_percent,
			allowance_in_daily_rate, working_days_per_year, created_at, updated_at
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query,
		settings.OrganizationID, settings.NightDiffPercent, settings.RegularHolidayPercent,
		settings.SpecialHolidayPercent, settings.OvertimeRegularPercent, settings.OvertimeRestDayPercent,
		settings.OvertimeRegularHolidayPercent, settings.OvertimeSpecialHolidayPercent,
		settings.AllowanceInDailyRate, settings.WorkingDaysPerYear,
	).Scan(
		&s.ID, &s.OrganizationID, &s.NightDiffPercent, &s.RegularHolidayPercent,
		&s.SpecialHolidayPercent, &s.OvertimeRegularPercent, &s.OvertimeRestDayPercent,
		&s.OvertimeRegularHolidayPercent, &s.OvertimeSpecialHolidayPercent,
		&s.AllowanceInDailyRate, &s.WorkingDaysPerYear, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}

// ========== RUNS ==========

func (r *payrollRepository) CreateRunWithPayslips(ctx context.Context, run payroll.Run, payslips []payroll.Payslip) (payroll.Run, error) {
	var created payroll.Run
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = insertRun(ctx, tx, run)
		if err != nil {
			return err
		}
		return insertPayslips(ctx, tx, payslips)
	})
	if err != nil {
		return payroll.Run{}, err
	}
	return created, nil
}

func (r *payrollRepository) ReplaceRunPayslips(ctx context.Context, run payroll.Run, payslips []payroll.Payslip) (payroll.Run, error) {
	var updated payroll.Run
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		overrides, err := json.Marshal(run.Overrides)
		if err != nil {
			return fmt.Errorf("failed to marshal run overrides: %w", err)
		}

		query := `
			UPDATE payroll_runs SET
				period_start = $1, period_end = $2, employee_ids = $3, overrides = $4,
				deductions_enabled = $5, night_diff_percent = $6, updated_at = NOW()
			WHERE id = $7 AND organization_id = $8
			RETURNING id, organization_id, period_start, period_end, employee_ids, overrides,
				deductions_enabled, night_diff_percent, status, created_at, updated_at
		`
		row := tx.QueryRow(ctx, query,
			run.PeriodStart, run.PeriodEnd, run.EmployeeIDs, overrides,
			run.DeductionsEnabled, nullDecimal(run.NightDiffPercent), run.ID, run.OrganizationID,
		)
		updated, err = scanRun(row)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrRunNotFound
			}
			return fmt.Errorf("failed to update payroll run: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM payslips WHERE run_id = $1`, run.ID); err != nil {
			return fmt.Errorf("failed to clear payslips: %w", err)
		}
		return insertPayslips(ctx, tx, payslips)
	})
	if err != nil {
		return payroll.Run{}, err
	}
	return updated, nil
}

func insertRun(ctx context.Context, tx pgx.Tx, run payroll.Run) (payroll.Run, error) {
	overrides, err := json.Marshal(run.Overrides)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to marshal run overrides: %w", err)
	}

	query := `
		INSERT INTO payroll_runs (
			id, organization_id, period_start, period_end, employee_ids, overrides,
			deductions_enabled, night_diff_percent, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, organization_id, period_start, period_end, employee_ids, overrides,
			deductions_enabled, night_diff_percent, status, created_at, updated_at
	`
	row := tx.QueryRow(ctx, query,
		run.ID, run.OrganizationID, run.PeriodStart, run.PeriodEnd, run.EmployeeIDs, overrides,
		run.DeductionsEnabled, nullDecimal(run.NightDiffPercent), run.Status,
	)
	created, err := scanRun(row)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to insert payroll run: %w", err)
	}
	return created, nil
}

func insertPayslips(ctx context.Context, tx pgx.Tx, payslips []payroll.Payslip) error {
	query := `
		INSERT INTO payslips (
			id, run_id, organization_id, employee_id, period_label, gross_pay,
			deductions, incentives, non_taxable_allowance, net_pay, facts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, slip := range payslips {
		deductions, err := json.Marshal(slip.Deductions)
		if err != nil {
			return fmt.Errorf("failed to marshal deductions: %w", err)
		}
		incentives, err := json.Marshal(slip.Incentives)
		if err != nil {
			return fmt.Errorf("failed to marshal incentives: %w", err)
		}
		facts, err := json.Marshal(slip.Facts)
		if err != nil {
			return fmt.Errorf("failed to marshal pay facts: %w", err)
		}

		_, err = tx.Exec(ctx, query,
			slip.ID, slip.RunID, slip.OrganizationID, slip.EmployeeID, slip.PeriodLabel, slip.GrossPay,
			deductions, incentives, slip.NonTaxableAllowance, slip.NetPay, facts,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payslip for employee %s: %w", slip.EmployeeID, err)
		}
	}
	return nil
}

func (r *payrollRepository) GetRunByID(ctx context.Context, id string, organizationID string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, period_start, period_end, employee_ids, overrides,
			   deductions_enabled, night_diff_percent, status, created_at, updated_at
		FROM payroll_runs
		WHERE id = $1 AND organization_id = $2
	`
	run, err := scanRun(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return run, nil
}

func (r *payrollRepository) ListRuns(ctx context.Context, organizationID string) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, period_start, period_end, employee_ids, overrides,
			   deductions_enabled, night_diff_percent, status, created_at, updated_at
		FROM payroll_runs
		WHERE organization_id = $1
		ORDER BY period_start DESC, created_at DESC
	`
	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *payrollRepository) UpdateRunStatus(ctx context.Context, id string, organizationID string, status payroll.RunStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_runs SET status = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3
	`, status, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

func (r *payrollRepository) HasOverlappingRun(ctx context.Context, organizationID string, employeeIDs []string, start, end time.Time, excludeRunID string) (bool, []string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_ids
		FROM payroll_runs
		WHERE organization_id = $1
		  AND status != 'cancelled'
		  AND period_start <= $2 AND period_end >= $3
		  AND employee_ids && $4::text[]
		  AND ($5 = '' OR id != $5)
	`
	rows, err := q.Query(ctx, query, organizationID, end, start, employeeIDs, excludeRunID)
	if err != nil {
		return false, nil, fmt.Errorf("failed to check overlapping runs: %w", err)
	}
	defer rows.Close()

	requested := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		requested[id] = true
	}

	seen := map[string]bool{}
	var conflicted []string
	for rows.Next() {
		var ids []string
		if err := rows.Scan(&ids); err != nil {
			return false, nil, fmt.Errorf("failed to scan overlapping run: %w", err)
		}
		for _, id := range ids {
			if requested[id] && !seen[id] {
				seen[id] = true
				conflicted = append(conflicted, id)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return false, nil, err
	}
	return len(conflicted) > 0, conflicted, nil
}

// ========== PAYSLIPS ==========

const payslipColumns = `
	id, run_id, organization_id, employee_id, period_label, gross_pay,
	deductions, incentives, non_taxable_allowance, net_pay, facts, created_at, updated_at
`

func (r *payrollRepository) GetPayslipsForRun(ctx context.Context, runID string, organizationID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+payslipColumns+`
		FROM payslips
		WHERE run_id = $1 AND organization_id = $2
		ORDER BY employee_id
	`, runID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, slip)
	}
	return payslips, rows.Err()
}

func (r *payrollRepository) GetPayslipByID(ctx context.Context, id string, organizationID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	slip, err := scanPayslip(q.QueryRow(ctx, `
		SELECT `+payslipColumns+`
		FROM payslips
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return slip, nil
}

func (r *payrollRepository) UpdatePayslipTotals(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	deductions, err := json.Marshal(payslip.Deductions)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to marshal deductions: %w", err)
	}
	incentives, err := json.Marshal(payslip.Incentives)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to marshal incentives: %w", err)
	}

	slip, err := scanPayslip(q.QueryRow(ctx, `
		UPDATE payslips SET
			deductions = $1, incentives = $2, non_taxable_allowance = $3,
			net_pay = $4, updated_at = NOW()
		WHERE id = $5 AND organization_id = $6
		RETURNING `+payslipColumns+`
	`, deductions, incentives, payslip.NonTaxableAllowance, payslip.NetPay, payslip.ID, payslip.OrganizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to update payslip: %w", err)
	}
	return slip, nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetRunSummary(ctx context.Context, runID string, organizationID string) (payroll.RunSummary, error) {
	payslips, err := r.GetPayslipsForRun(ctx, runID, organizationID)
	if err != nil {
		return payroll.RunSummary{}, err
	}

	summary := payroll.RunSummary{RunID: runID}
	for _, slip := range payslips {
		summary.EmployeeCount++
		summary.TotalGross = summary.TotalGross.Add(slip.GrossPay)
		summary.TotalNet = summary.TotalNet.Add(slip.NetPay)
		for _, d := range slip.Deductions {
			summary.TotalDeductions = summary.TotalDeductions.Add(d.Amount)
		}
		for _, i := range slip.Incentives {
			summary.TotalIncentives = summary.TotalIncentives.Add(i.Amount)
		}
	}
	return summary, nil
}

// ========== SCAN HELPERS ==========

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	var overrides []byte
	var nightDiff decimal.NullDecimal

	err := row.Scan(
		&run.ID, &run.OrganizationID, &run.PeriodStart, &run.PeriodEnd, &run.EmployeeIDs, &overrides,
		&run.DeductionsEnabled, &nightDiff, &run.Status, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return payroll.Run{}, err
	}

	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &run.Overrides); err != nil {
			return payroll.Run{}, fmt.Errorf("failed to unmarshal run overrides: %w", err)
		}
	}
	if nightDiff.Valid {
		run.NightDiffPercent = &nightDiff.Decimal
	}
	return run, nil
}

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var slip payroll.Payslip
	var deductions, incentives, facts []byte

	err := row.Scan(
		&slip.ID, &slip.RunID, &slip.OrganizationID, &slip.EmployeeID, &slip.PeriodLabel, &slip.GrossPay,
		&deductions, &incentives, &slip.NonTaxableAllowance, &slip.NetPay, &facts,
		&slip.CreatedAt, &slip.UpdatedAt,
	)
	if err != nil {
		return payroll.Payslip{}, err
	}

	if err := json.Unmarshal(deductions, &slip.Deductions); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to unmarshal deductions: %w", err)
	}
	if err := json.Unmarshal(incentives, &slip.Incentives); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to unmarshal incentives: %w", err)
	}
	if err := json.Unmarshal(facts, &slip.Facts); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to unmarshal pay facts: %w", err)
	}
	return slip, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	return &nd.Decimal
}
