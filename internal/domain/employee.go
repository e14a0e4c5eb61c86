package domain

import (
	"encoding/json"
	"time"
)

// Employee mirrors one row of the Employees table. ID is assigned by the
// store on insert and never changes afterwards. Every field other than the
// names is optional; a nil pointer is stored and read back as SQL NULL.
type Employee struct {
	ID              int64      `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
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

// MarshalBinary/UnmarshalBinary let the redis client store employees directly.
func (e *Employee) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Employee) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}
