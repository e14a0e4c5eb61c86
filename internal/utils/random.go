package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/northwind-labs/employee-directory/backend/internal/domain"
)

var firstNames = []string{
	"Nancy", "Andrew", "Janet", "Margaret", "Steven", "Michael", "Robert",
	"Laura", "Anne", "James", "Maria", "Thomas", "Elizabeth", "Patricia",
	"Christopher", "Helen", "Daniel", "Sarah", "Paul", "Karen",
}

var lastNames = []string{
	"Davolio", "Fuller", "Leverling", "Peacock", "Buchanan", "Suyama",
	"King", "Callahan", "Dodsworth", "Smith", "Johnson", "Williams",
	"Brown", "Jones", "Garcia", "Miller", "Davis", "Wilson", "Moore",
	"Taylor",
}

var titles = []string{
	"Sales Representative", "Sales Manager", "Inside Sales Coordinator",
	"Vice President, Sales", "Sales Associate", "Account Executive",
}

var titlesOfCourtesy = []string{"Mr.", "Ms.", "Mrs.", "Dr."}

var cities = []string{"Seattle", "Tacoma", "Kirkland", "Redmond", "London"}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// GenerateRandomEmployee produces a plausible employee record for seeding.
// Optional fields are occasionally left nil so seeded data also exercises the
// NULL handling paths.
func GenerateRandomEmployee() *domain.Employee {
	employee := &domain.Employee{
		FirstName: firstNames[rand.Intn(len(firstNames))],
		LastName:  lastNames[rand.Intn(len(lastNames))],
	}

	if rand.Intn(10) > 0 {
		employee.Title = strPtr(titles[rand.Intn(len(titles))])
	}
	if rand.Intn(10) > 2 {
		employee.TitleOfCourtesy = strPtr(titlesOfCourtesy[rand.Intn(len(titlesOfCourtesy))])
	}
	if rand.Intn(10) > 1 {
		birth := time.Date(1950+rand.Intn(40), time.Month(rand.Intn(12)+1), rand.Intn(28)+1, 0, 0, 0, 0, time.UTC)
		employee.BirthDate = timePtr(birth)
		hire := birth.AddDate(20+rand.Intn(20), 0, 0)
		employee.HireDate = timePtr(hire)
	}
	if rand.Intn(10) > 3 {
		employee.City = strPtr(cities[rand.Intn(len(cities))])
		employee.Country = strPtr("USA")
		employee.Address = strPtr(fmt.Sprintf("%d - %dth Ave. E.", rand.Intn(900)+100, rand.Intn(30)+1))
		employee.PostalCode = strPtr(fmt.Sprintf("%05d", rand.Intn(100000)))
	}
	if rand.Intn(10) > 4 {
		employee.HomePhone = strPtr(fmt.Sprintf("(206) 555-%04d", rand.Intn(10000)))
		employee.Extension = strPtr(fmt.Sprintf("%d", rand.Intn(9000)+1000))
	}

	return employee
}
