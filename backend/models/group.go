package models

import (
	"time"

	"gorm.io/gorm"
)

// Group is a cohort of aid recipients managed by one organization ("business" in the API).
// JSON names follow the column names the console has always consumed.
type Group struct {
	ID               uint           `gorm:"primaryKey" json:"group_id"`
	OrgID            string         `gorm:"index;size:64;not null" json:"-"`
	Name             string         `gorm:"size:60;not null" json:"group_name"`
	OrganizationName string         `gorm:"size:100;not null" json:"org_name"`
	ManagerName      string         `gorm:"size:80;not null" json:"contact_name"`
	Zipcode          string         `gorm:"size:10" json:"zipcode"`
	Address          string         `gorm:"not null" json:"address1"`
	DetailAddress    string         `json:"address2"`
	MobilePhone      string         `gorm:"size:11;not null" json:"mobile_phone"`
	Phone            string         `gorm:"size:11" json:"office_phone"`
	Description      string         `gorm:"type:text" json:"description"`
	TargetCount      int64          `gorm:"->;-:migration" json:"target_count"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Group) TableName() string { return "nm_groups" }

// FullAddress joins zipcode, road address and detail address the way the roster prints it.
func (g Group) FullAddress() string {
	return joinNonEmpty(g.Zipcode, g.Address, g.DetailAddress)
}

// GroupInput is the create/update payload for a group.
type GroupInput struct {
	Name             string  `json:"name" validate:"required,max=15"`
	OrganizationName string  `json:"organizationName" validate:"required,max=25"`
	ManagerName      string  `json:"managerName" validate:"required,max=20"`
	Zipcode          string  `json:"zipcode" validate:"max=10"`
	Address          string  `json:"address" validate:"required"`
	DetailAddress    string  `json:"detailAddress"`
	MobilePhone      string  `json:"mobilePhone" validate:"required,mobile_phone"`
	Phone            string  `json:"phone" validate:"omitempty,phone_number"`
	Description      *string `json:"description" validate:"omitempty,max=500"`
}

// Normalize trims text fields, strips phone separators and drops a leading zipcode
// from the address.
func (in *GroupInput) Normalize() {
	in.Name = trim(in.Name)
	in.OrganizationName = trim(in.OrganizationName)
	in.ManagerName = trim(in.ManagerName)
	in.Zipcode = trim(in.Zipcode)
	in.Address = StripZipcode(in.Zipcode, in.Address)
	in.DetailAddress = trim(in.DetailAddress)
	in.MobilePhone = stripPhone(in.MobilePhone)
	in.Phone = stripPhone(in.Phone)
	if in.Description != nil {
		d := trim(*in.Description)
		in.Description = &d
	}
}

// Apply copies the input onto g.
func (in GroupInput) Apply(g *Group) {
	g.Name = in.Name
	g.OrganizationName = in.OrganizationName
	g.ManagerName = in.ManagerName
	g.Zipcode = in.Zipcode
	g.Address = in.Address
	g.DetailAddress = in.DetailAddress
	g.MobilePhone = in.MobilePhone
	g.Phone = in.Phone
	if in.Description != nil {
		g.Description = *in.Description
	}
}

// GroupInputFrom rebuilds the payload that would produce g.
func GroupInputFrom(g Group) GroupInput {
	desc := g.Description
	return GroupInput{
		Name:             g.Name,
		OrganizationName: g.OrganizationName,
		ManagerName:      g.ManagerName,
		Zipcode:          g.Zipcode,
		Address:          g.Address,
		DetailAddress:    g.DetailAddress,
		MobilePhone:      g.MobilePhone,
		Phone:            g.Phone,
		Description:      &desc,
	}
}

// MergeGroupUpdate overlays the non-empty fields of patch onto base. An update
// never clears a group field.
func MergeGroupUpdate(base, patch GroupInput) GroupInput {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.Name, patch.Name)
	pick(&base.OrganizationName, patch.OrganizationName)
	pick(&base.ManagerName, patch.ManagerName)
	pick(&base.Zipcode, patch.Zipcode)
	pick(&base.Address, patch.Address)
	pick(&base.DetailAddress, patch.DetailAddress)
	pick(&base.MobilePhone, patch.MobilePhone)
	pick(&base.Phone, patch.Phone)
	if patch.Description != nil && *patch.Description != "" {
		base.Description = patch.Description
	}
	return base
}
