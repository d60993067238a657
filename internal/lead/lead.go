// Package lead models the loosely-structured contact records the relay
// receives from GoHighLevel. Every field is optional; absence and empty
// string are treated the same way downstream.
package lead

import (
	"strconv"
	"strings"
)

// Vehicle is the nested vehicle-of-interest mapping.
type Vehicle struct {
	Year  string
	Make  string
	Model string
	VIN   string
}

// Empty reports whether no vehicle field carries a value.
func (v Vehicle) Empty() bool {
	return v.Year == "" && v.Make == "" && v.Model == "" && v.VIN == ""
}

// Lead is the typed form of one raw contact record.
type Lead struct {
	ID            string
	FirstName     string
	LastName      string
	Phone         string
	HomePhone     string
	MobilePhone   string
	WorkPhone     string
	Email         string
	Address1      string
	City          string
	State         string
	PostalCode    string
	Vehicle       *Vehicle
	Tags          []string
	ContactSource string
	Comments      string
	AIMemory      string
	DateAdded     string
}

// Note returns the free-text note used by the generic dialect: the primary
// comments field, falling back to the AI memory field.
func (l Lead) Note() string {
	if l.Comments != "" {
		return l.Comments
	}
	return l.AIMemory
}

// FromMap builds a Lead from a decoded JSON object. Unknown keys are ignored
// and wrong-typed values degrade to absent; shape rejection happens at the
// request boundary, not here.
func FromMap(raw map[string]interface{}) Lead {
	l := Lead{
		ID:          asString(raw["id"]),
		FirstName:   asString(raw["firstName"]),
		LastName:    asString(raw["lastName"]),
		Phone:       asString(raw["phone"]),
		HomePhone:   asString(raw["homePhone"]),
		MobilePhone: asString(raw["mobilePhone"]),
		WorkPhone:   asString(raw["workPhone"]),
		Email:       asString(raw["email"]),
		Address1:    asString(raw["address1"]),
		City:        asString(raw["city"]),
		State:       asString(raw["state"]),
		PostalCode:  asString(raw["postalCode"]),
		Comments:    asString(raw["comments"]),
		AIMemory:    asString(raw["AI Memory"]),
		DateAdded:   asString(raw["dateAdded"]),
	}

	if l.Comments == "" {
		l.Comments = asString(raw["notes"])
	}

	l.ContactSource = asString(raw["Contact Source"])
	if l.ContactSource == "" {
		l.ContactSource = asString(raw["source"])
	}

	if vm, ok := raw["vehicleOfInterest"].(map[string]interface{}); ok {
		v := Vehicle{
			Year:  asString(vm["year"]),
			Make:  asString(vm["make"]),
			Model: asString(vm["model"]),
			VIN:   asString(vm["vin"]),
		}
		if !v.Empty() {
			l.Vehicle = &v
		}
	}

	if ts, ok := raw["tags"].([]interface{}); ok {
		for _, t := range ts {
			if s := asString(t); s != "" {
				l.Tags = append(l.Tags, s)
			}
		}
	}

	return l
}

// asString normalizes the scalar types encoding/json produces. Numeric ids
// and vehicle years arrive as float64.
func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
