package seed

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/northwind-labs/employee-directory/backend/internal/domain"
	"github.com/northwind-labs/employee-directory/backend/internal/repository"
)

// CSV layout: FirstName,LastName,Title,TitleOfCourtesy,BirthDate,HireDate,
// Address,City,Region,PostalCode,Country,HomePhone,Extension,Notes,ReportsTo,PhotoPath
// Dates use 2006-01-02; ReportsTo refers to the 1-based row number of the
// manager within the same file. Empty cells become NULL.
const dateLayout = "2006-01-02"

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		slog.Error("invalid date in seed file, storing NULL", "value", s, "error", err)
		return nil
	}
	return &t
}

// ImportEmployees loads employee rows from a CSV file. ReportsTo references
// are resolved in a second pass once every row has its generated id.
func ImportEmployees(r *repository.Repository, path string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("failed to open seed file", "path", path, "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// skip the header row
	if _, err := reader.Read(); err != nil {
		slog.Error("failed to read seed file header", "error", err)
		return
	}

	type pendingManager struct {
		employee *domain.Employee
		row      int
	}

	inserted := []*domain.Employee{}
	pending := []pendingManager{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Error("failed to read seed row", "error", err)
			return
		}
		if len(record) < 16 {
			slog.Error("seed row has too few columns", "columns", len(record))
			continue
		}

		employee := &domain.Employee{
			FirstName:       strings.TrimSpace(record[0]),
			LastName:        strings.TrimSpace(record[1]),
			Title:           optString(record[2]),
			TitleOfCourtesy: optString(record[3]),
			BirthDate:       optDate(record[4]),
			HireDate:        optDate(record[5]),
			Address:         optString(record[6]),
			City:            optString(record[7]),
			Region:          optString(record[8]),
			PostalCode:      optString(record[9]),
			Country:         optString(record[10]),
			HomePhone:       optString(record[11]),
			Extension:       optString(record[12]),
			Notes:           optString(record[13]),
			PhotoPath:       optString(record[15]),
		}

		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("failed to insert employee", "firstName", employee.FirstName, "lastName", employee.LastName, "error", err)
			continue
		}

		// the insert only writes the name columns, fill in the rest
		if err := r.UpdateEmployee(employee); err != nil {
			slog.Error("failed to fill employee details", "id", employee.ID, "error", err)
			continue
		}

		inserted = append(inserted, employee)

		if reportsTo := strings.TrimSpace(record[14]); reportsTo != "" {
			row, err := strconv.Atoi(reportsTo)
			if err != nil || row < 1 {
				slog.Error("invalid ReportsTo reference", "value", reportsTo)
				continue
			}
			pending = append(pending, pendingManager{employee: employee, row: row})
		}
	}

	// second pass: resolve manager row numbers to generated ids
	resolved := 0
	for _, p := range pending {
		if p.row > len(inserted) {
			slog.Error("ReportsTo row out of range", "row", p.row)
			continue
		}

		managerID := inserted[p.row-1].ID
		p.employee.ReportsTo = &managerID
		if err := r.UpdateEmployee(p.employee); err != nil {
			slog.Error("failed to set manager", "id", p.employee.ID, "error", err)
			continue
		}
		resolved++
	}

	slog.Info("seed import finished", "inserted", len(inserted), "managersResolved", resolved)
}
