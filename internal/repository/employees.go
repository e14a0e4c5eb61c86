package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/northwind-labs/employee-directory/backend/internal/domain"
)

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) ListEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT EmployeeID, FirstName, LastName, Title FROM Employees
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, &PersistenceError{Op: "list employees", Err: err}
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{&employee.ID, &employee.FirstName, &employee.LastName, &employee.Title}
		if err := rows.Scan(dst...); err != nil {
			return nil, &PersistenceError{Op: "scan employee", Err: err}
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list employees", Err: err}
	}

	return employees, nil
}

// GetEmployeeByID binds the id as a query parameter. Interpolating it into
// the statement text would open the lookup to injection.
func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT EmployeeID, FirstName, LastName, Title, TitleOfCourtesy, BirthDate, HireDate,
		       Address, City, Region, PostalCode, Country, HomePhone, Extension, Notes,
		       ReportsTo, PhotoPath
		FROM Employees WHERE EmployeeID = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	employee := &domain.Employee{}
	dst := []any{
		&employee.ID, &employee.FirstName, &employee.LastName, &employee.Title,
		&employee.TitleOfCourtesy, &employee.BirthDate, &employee.HireDate,
		&employee.Address, &employee.City, &employee.Region, &employee.PostalCode,
		&employee.Country, &employee.HomePhone, &employee.Extension, &employee.Notes,
		&employee.ReportsTo, &employee.PhotoPath,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "get employee", Err: err}
	}

	return employee, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	if employee == nil {
		return ErrNilEmployee
	}

	query := `
		INSERT INTO Employees (FirstName, LastName, Title)
		VALUES ($1, $2, $3)
		RETURNING EmployeeID
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{employee.FirstName, employee.LastName, employee.Title}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.ID); err != nil {
		return &PersistenceError{Op: "create employee", Err: err}
	}

	return nil
}

// DeleteEmployee is idempotent: deleting an id that does not exist is a
// success from the caller's perspective.
func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM Employees WHERE EmployeeID = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return &PersistenceError{Op: "delete employee", Err: err}
	}

	return nil
}

// UpdateEmployee writes every mutable column. A nil optional field is stored
// as NULL, never coerced to an empty string.
func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	if employee == nil {
		return ErrNilEmployee
	}

	query := `
		UPDATE Employees
		SET FirstName = $1,
		    LastName = $2,
		    Title = $3,
		    TitleOfCourtesy = $4,
		    BirthDate = $5,
		    HireDate = $6,
		    Address = $7,
		    City = $8,
		    Region = $9,
		    PostalCode = $10,
		    Country = $11,
		    HomePhone = $12,
		    Extension = $13,
		    Notes = $14,
		    ReportsTo = $15,
		    PhotoPath = $16
		WHERE EmployeeID = $17
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		employee.FirstName, employee.LastName, employee.Title, employee.TitleOfCourtesy,
		employee.BirthDate, employee.HireDate, employee.Address, employee.City,
		employee.Region, employee.PostalCode, employee.Country, employee.HomePhone,
		employee.Extension, employee.Notes, employee.ReportsTo, employee.PhotoPath,
		employee.ID,
	}

	result, err := r.dbpool.ExecContext(ctx, query, args...)
	if err != nil {
		return &PersistenceError{Op: "update employee", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &PersistenceError{Op: "update employee", Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
