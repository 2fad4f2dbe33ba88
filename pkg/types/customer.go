package types

import (
	"strings"
	"time"
)

// Plan is a customer's subscription plan. The known values are listed below
// but any non-empty plan is accepted.
type Plan string

// Known subscription plans.
const (
	PlanDaily   Plan = "Daily"
	PlanWeekly  Plan = "Weekly"
	PlanMonthly Plan = "Monthly"
	PlanCustom  Plan = "Custom"
)

// Customer is a subscriber who places orders.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"` // unique across customers
	Address   string    `json:"address"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerInput carries the writable customer fields for create and update.
type CustomerInput struct {
	Name    string
	Phone   string
	Address string
	Plan    Plan
}

// Normalize trims surrounding whitespace from every field.
func (in CustomerInput) Normalize() CustomerInput {
	return CustomerInput{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		Plan:    Plan(strings.TrimSpace(string(in.Plan))),
	}
}

// Validate reports an ErrInvalidData error when any field is empty.
func (in CustomerInput) Validate() error {
	if in.Name == "" || in.Phone == "" || in.Address == "" || in.Plan == "" {
		return Invalidf("All fields are required: name, phone, address, plan")
	}
	return nil
}
