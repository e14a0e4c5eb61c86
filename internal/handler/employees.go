package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/northwind-labs/employee-directory/backend/internal/domain"
	"github.com/northwind-labs/employee-directory/backend/internal/repository"
)

const eventsQueueName = "employee_events"

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.ListEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees listed", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string  `json:"firstName" validate:"required"`
		LastName  string  `json:"lastName" validate:"required"`
		Title     *string `json:"title"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Title:     req.Title,
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.publishEmployeeEvent(domain.EmployeeCreated, employee)

	h.successResponse(w, r, "employee created", employee)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)
	h.successResponse(w, r, "employee fetched", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName       *string    `json:"firstName"`
		LastName        *string    `json:"lastName"`
		Title           *string    `json:"title"`
		TitleOfCourtesy *string    `json:"titleOfCourtesy"`
		BirthDate       *time.Time `json:"birthDate"`
		HireDate        *time.Time `json:"hireDate"`
		Address         *string    `json:"address"`
		City            *string    `json:"city"`
		Region          *string    `json:"region"`
		PostalCode      *string    `json:"postalCode"`
		Country         *string    `json:"country"`
		HomePhone       *string    `json:"homePhone"`
		Extension       *string    `json:"extension"`
		Notes           *string    `json:"notes"`
		ReportsTo       *int64     `json:"reportsTo"`
		PhotoPath       *string    `json:"photoPath"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Title != nil {
		employee.Title = req.Title
	}
	if req.TitleOfCourtesy != nil {
		employee.TitleOfCourtesy = req.TitleOfCourtesy
	}
	if req.BirthDate != nil {
		employee.BirthDate = req.BirthDate
	}
	if req.HireDate != nil {
		employee.HireDate = req.HireDate
	}
	if req.Address != nil {
		employee.Address = req.Address
	}
	if req.City != nil {
		employee.City = req.City
	}
	if req.Region != nil {
		employee.Region = req.Region
	}
	if req.PostalCode != nil {
		employee.PostalCode = req.PostalCode
	}
	if req.Country != nil {
		employee.Country = req.Country
	}
	if req.HomePhone != nil {
		employee.HomePhone = req.HomePhone
	}
	if req.Extension != nil {
		employee.Extension = req.Extension
	}
	if req.Notes != nil {
		employee.Notes = req.Notes
	}
	if req.ReportsTo != nil {
		employee.ReportsTo = req.ReportsTo
	}
	if req.PhotoPath != nil {
		employee.PhotoPath = req.PhotoPath
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.errorResponse(w, r, "employee no longer exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateEmployee(employee.ID)
	h.publishEmployeeEvent(domain.EmployeeUpdated, employee)

	h.successResponse(w, r, "employee updated", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateEmployee(employee.ID)
	h.publishEmployeeEvent(domain.EmployeeDeleted, employee)

	h.successResponse(w, r, "employee deleted", nil)
}

// publishEmployeeEvent pushes a lifecycle event onto the events queue. A nil
// channel means events are disabled; publish failures are logged, not
// returned, because the record mutation already committed.
func (h *Handler) publishEmployeeEvent(eventType string, employee *domain.Employee) {
	if h.eventsChannel == nil {
		return
	}

	event := domain.EmployeeEvent{
		Type:       eventType,
		EmployeeID: employee.ID,
		FirstName:  employee.FirstName,
		LastName:   employee.LastName,
		OccurredAt: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to serialize employee event", "type", eventType, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.eventsChannel.PublishWithContext(
		ctx,
		"",
		eventsQueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        eventData,
		},
	); err != nil {
		slog.Error("failed to publish employee event", "type", eventType, "error", err)
	}
}
