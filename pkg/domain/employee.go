package domain

import "strings"

// Record represents an employee row as returned by the database,
// keyed by column name
type Record map[string]interface{}

// EmployeeInput is the request body accepted by create and update
type EmployeeInput struct {
	Name  string `json:"name" msgpack:"name" validate:"required"`
	Email string `json:"email" msgpack:"email"`
}

// NameParts holds the stored form of an employee name
type NameParts struct {
	First string
	Last  string
}

// SplitName splits name on its first space. Everything after that space,
// further spaces included, becomes the last name; without a space the last
// name is empty.
func SplitName(name string) NameParts {
	first, last, _ := strings.Cut(name, " ")
	return NameParts{First: first, Last: last}
}

// Parts returns the split form of the input name
func (in EmployeeInput) Parts() NameParts {
	return SplitName(in.Name)
}
