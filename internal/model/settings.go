package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FamilySettings holds one family's shared preferences, one row per tenant.
type FamilySettings struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"-"`
	TenantID    string      `gorm:"not null;uniqueIndex" json:"tenantId"`
	Preferences Preferences `gorm:"type:jsonb" json:"preferences"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type School struct {
	Name       string `json:"name"`
	PickupTime string `json:"pickupTime,omitempty"`
	Location   string `json:"location,omitempty"`
}

type Routines struct {
	GroceryShopping string `json:"groceryShopping"`
	SchoolPickup    string `json:"schoolPickup"`
	Other           string `json:"other"`
}

type Preferences struct {
	GroceryStores []string `json:"groceryStores"`
	Schools       []School `json:"schools"`
	Neighborhood  string   `json:"neighborhood"`
	ZipCode       string   `json:"zipCode"`
	Routines      Routines `json:"routines"`
}

// DefaultPreferences is the state a tenant starts with and resets to.
func DefaultPreferences() Preferences {
	return Preferences{
		GroceryStores: []string{},
		Schools:       []School{},
	}
}

// Validate enforces the same limits the original settings document had.
func (p Preferences) Validate() []string {
	var errs []string
	if len(p.GroceryStores) > 10 {
		errs = append(errs, "Maximum 10 grocery stores allowed")
	}
	if len(p.Schools) > 5 {
		errs = append(errs, "Maximum 5 schools allowed")
	}
	for i, s := range p.Schools {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("schools[%d].name is required", i))
		}
	}
	if len(p.Neighborhood) > 200 {
		errs = append(errs, "neighborhood must be at most 200 characters")
	}
	if len(p.ZipCode) > 10 {
		errs = append(errs, "zipCode must be at most 10 characters")
	}
	if len(p.Routines.GroceryShopping) > 200 {
		errs = append(errs, "routines.groceryShopping must be at most 200 characters")
	}
	if len(p.Routines.SchoolPickup) > 200 {
		errs = append(errs, "routines.schoolPickup must be at most 200 characters")
	}
	if len(p.Routines.Other) > 500 {
		errs = append(errs, "routines.other must be at most 500 characters")
	}
	return errs
}

func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Preferences) Scan(src any) error {
	return scanJSON(src, p, "Preferences")
}

// AIContext formats the preferences as free-text context for the suggestion
// prompt.
func (s *FamilySettings) AIContext() string {
	p := s.Preferences
	var context []string

	if p.Neighborhood != "" {
		context = append(context, "Location: "+p.Neighborhood)
	}
	if p.ZipCode != "" {
		context = append(context, "Zip Code: "+p.ZipCode)
	}
	if len(p.GroceryStores) > 0 {
		context = append(context, "Preferred stores: "+strings.Join(p.GroceryStores, ", "))
	}
	if len(p.Schools) > 0 {
		infos := make([]string, len(p.Schools))
		for i, school := range p.Schools {
			parts := []string{school.Name}
			if school.PickupTime != "" {
				parts = append(parts, "pickup at "+school.PickupTime)
			}
			if school.Location != "" {
				parts = append(parts, "("+school.Location+")")
			}
			infos[i] = strings.Join(parts, " ")
		}
		context = append(context, "Schools: "+strings.Join(infos, "; "))
	}
	if p.Routines.GroceryShopping != "" {
		context = append(context, "Shopping routine: "+p.Routines.GroceryShopping)
	}
	if p.Routines.SchoolPickup != "" {
		context = append(context, "School pickup routine: "+p.Routines.SchoolPickup)
	}
	if p.Routines.Other != "" {
		context = append(context, "Other notes: "+p.Routines.Other)
	}

	return strings.Join(context, "\n")
}
