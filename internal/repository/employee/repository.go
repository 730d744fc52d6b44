package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"employee-registry/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

// Create inserts the record in a single statement. Uniqueness of employee_id
// and email is enforced by the table constraints, so concurrent creates with
// the same keys cannot both succeed: the loser gets dto.ErrAlreadyExists.
func (r *Repository) Create(ctx context.Context, e dto.Employee) error {
	query := `
insert into employees
  (employee_id, name, email, phone, department, other_department, date_of_joining, role, dob, age, gender)
values
  (@employee_id, @name, @email, @phone, @department, @other_department, @date_of_joining::date, @role, @dob::date, @age, @gender);
`
	args := pgx.NamedArgs{
		"employee_id":      e.EmployeeID,
		"name":             e.Name,
		"email":            e.Email,
		"phone":            e.Phone,
		"department":       e.Department,
		"other_department": e.OtherDepartment,
		"date_of_joining":  e.DateOfJoining,
		"role":             e.Role,
		"dob":              e.DOB,
		"age":              e.Age,
		"gender":           e.Gender,
	}

	_, err := r.pool.Exec(ctx, query, args)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return dto.ErrAlreadyExists
		}

		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

// Update overwrites all mutable columns of the row keyed by employee_id.
// The key itself never changes.
func (r *Repository) Update(ctx context.Context, e dto.Employee) error {
	query := `
update employees set
  name             = @name,
  email            = @email,
  phone            = @phone,
  department       = @department,
  other_department = @other_department,
  date_of_joining  = @date_of_joining::date,
  role             = @role,
  dob              = @dob::date,
  age              = @age,
  gender           = @gender
where employee_id = @employee_id;
`
	args := pgx.NamedArgs{
		"employee_id":      e.EmployeeID,
		"name":             e.Name,
		"email":            e.Email,
		"phone":            e.Phone,
		"department":       e.Department,
		"other_department": e.OtherDepartment,
		"date_of_joining":  e.DateOfJoining,
		"role":             e.Role,
		"dob":              e.DOB,
		"age":              e.Age,
		"gender":           e.Gender,
	}

	tag, err := r.pool.Exec(ctx, query, args)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return dto.ErrAlreadyExists
		}

		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, employeeID string) error {
	query := `delete from employees where employee_id = $1`

	tag, err := r.pool.Exec(ctx, query, employeeID)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, employeeID string) (*dto.Employee, error) {
	query := `
select employee_id,
       name,
       email,
       phone,
       department,
       other_department,
       to_char(date_of_joining, 'YYYY-MM-DD'),
       role,
       to_char(dob, 'YYYY-MM-DD'),
       age,
       gender
from employees
where employee_id = $1;
`
	row := r.pool.QueryRow(ctx, query, employeeID)

	var out dto.Employee

	err := row.Scan(
		&out.EmployeeID,
		&out.Name,
		&out.Email,
		&out.Phone,
		&out.Department,
		&out.OtherDepartment,
		&out.DateOfJoining,
		&out.Role,
		&out.DOB,
		&out.Age,
		&out.Gender,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &out, nil
}

// List returns every record in storage order.
func (r *Repository) List(ctx context.Context) ([]dto.Employee, error) {
	query := `
select employee_id,
       name,
       email,
       phone,
       department,
       other_department,
       to_char(date_of_joining, 'YYYY-MM-DD'),
       role,
       to_char(dob, 'YYYY-MM-DD'),
       age,
       gender
from employees
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.Employee
	for rows.Next() {
		var e dto.Employee

		err = rows.Scan(
			&e.EmployeeID,
			&e.Name,
			&e.Email,
			&e.Phone,
			&e.Department,
			&e.OtherDepartment,
			&e.DateOfJoining,
			&e.Role,
			&e.DOB,
			&e.Age,
			&e.Gender,
		)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}
