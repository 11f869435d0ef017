package models

import (
	"time"

	"gorm.io/gorm"
)

// Recipient categories offered by the target form.
var (
	TargetTypes      = []string{"수급자", "차상위", "일반저소득"}
	TargetHouseholds = []string{"독거어르신", "조손가구", "저소득1인가구", "겨울철에너지취약계층"}
)

const TargetStatusActive = "active"

// Target is an individual aid recipient within a group.
type Target struct {
	ID                uint           `gorm:"primaryKey"`
	GroupID           uint           `gorm:"index;not null"`
	Name              string         `gorm:"size:100;not null"`
	TargetType        string         `gorm:"size:20;not null"`
	TargetHousehold   string         `gorm:"size:40;not null"`
	Zipcode           string         `gorm:"size:10"`
	Address           string         `gorm:"not null"`
	DetailAddress     string
	MobilePhone       string `gorm:"size:11;not null"`
	Phone             string `gorm:"size:11"`
	ApplicationReason string `gorm:"type:text;not null"`
	Directions        string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Target) TableName() string { return "nm_targets" }

// TargetView is the shape targets take on the wire.
type TargetView struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	TargetType        string `json:"targetType"`
	TargetHousehold   string `json:"targetHousehold"`
	Zipcode           string `json:"zipcode"`
	Address           string `json:"address"` // "<zipcode> <road address>"
	DetailAddress     string `json:"detailAddress"`
	MobilePhone       string `json:"mobilePhone"`
	Phone             string `json:"phone"`
	ApplicationReason string `json:"applicationReason"`
	Directions        string `json:"directions"`
	RegisteredAt      string `json:"registeredAt"`
	Status            string `json:"status"`
}

func (t Target) View() TargetView {
	registered := ""
	if !t.CreatedAt.IsZero() {
		registered = t.CreatedAt.Format("2006-01-02")
	}
	return TargetView{
		ID:                t.ID,
		Name:              t.Name,
		TargetType:        t.TargetType,
		TargetHousehold:   t.TargetHousehold,
		Zipcode:           t.Zipcode,
		Address:           joinNonEmpty(t.Zipcode, t.Address),
		DetailAddress:     t.DetailAddress,
		MobilePhone:       t.MobilePhone,
		Phone:             t.Phone,
		ApplicationReason: t.ApplicationReason,
		Directions:        t.Directions,
		RegisteredAt:      registered,
		Status:            TargetStatusActive,
	}
}

func TargetViews(targets []Target) []TargetView {
	views := make([]TargetView, 0, len(targets))
	for _, t := range targets {
		views = append(views, t.View())
	}
	return views
}

// TargetInput is the create payload for a target.
type TargetInput struct {
	Name              string `json:"name" validate:"required,max=100"`
	TargetType        string `json:"targetType" validate:"required,target_type"`
	TargetHousehold   string `json:"targetHousehold" validate:"required,target_household"`
	Zipcode           string `json:"zipcode" validate:"max=10"`
	Address           string `json:"address" validate:"required"`
	DetailAddress     string `json:"detailAddress"`
	MobilePhone       string `json:"mobilePhone" validate:"required,mobile_phone"`
	Phone             string `json:"phone" validate:"omitempty,phone_number"`
	ApplicationReason string `json:"applicationReason" validate:"required,max=1000"`
	Directions        string `json:"directions" validate:"max=500"`
}

// TargetPatch is the update payload for a target. Nil fields are left alone; a
// provided empty string clears the field, subject to validation.
type TargetPatch struct {
	Name              *string `json:"name"`
	TargetType        *string `json:"targetType"`
	TargetHousehold   *string `json:"targetHousehold"`
	Zipcode           *string `json:"zipcode"`
	Address           *string `json:"address"`
	DetailAddress     *string `json:"detailAddress"`
	MobilePhone       *string `json:"mobilePhone"`
	Phone             *string `json:"phone"`
	ApplicationReason *string `json:"applicationReason"`
	Directions        *string `json:"directions"`
}

func (in *TargetInput) Normalize() {
	in.Name = trim(in.Name)
	in.TargetType = trim(in.TargetType)
	in.TargetHousehold = trim(in.TargetHousehold)
	in.Zipcode = trim(in.Zipcode)
	in.Address = StripZipcode(in.Zipcode, in.Address)
	in.DetailAddress = trim(in.DetailAddress)
	in.MobilePhone = stripPhone(in.MobilePhone)
	in.Phone = stripPhone(in.Phone)
}

func (in TargetInput) Apply(t *Target) {
	t.Name = in.Name
	t.TargetType = in.TargetType
	t.TargetHousehold = in.TargetHousehold
	t.Zipcode = in.Zipcode
	t.Address = in.Address
	t.DetailAddress = in.DetailAddress
	t.MobilePhone = in.MobilePhone
	t.Phone = in.Phone
	t.ApplicationReason = in.ApplicationReason
	t.Directions = in.Directions
}

func TargetInputFrom(t Target) TargetInput {
	return TargetInput{
		Name:              t.Name,
		TargetType:        t.TargetType,
		TargetHousehold:   t.TargetHousehold,
		Zipcode:           t.Zipcode,
		Address:           t.Address,
		DetailAddress:     t.DetailAddress,
		MobilePhone:       t.MobilePhone,
		Phone:             t.Phone,
		ApplicationReason: t.ApplicationReason,
		Directions:        t.Directions,
	}
}

// Merge overlays the provided patch fields onto base.
func (p TargetPatch) Merge(base TargetInput) TargetInput {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.Name, p.Name)
	set(&base.TargetType, p.TargetType)
	set(&base.TargetHousehold, p.TargetHousehold)
	set(&base.Zipcode, p.Zipcode)
	set(&base.Address, p.Address)
	set(&base.DetailAddress, p.DetailAddress)
	set(&base.MobilePhone, p.MobilePhone)
	set(&base.Phone, p.Phone)
	set(&base.ApplicationReason, p.ApplicationReason)
	set(&base.Directions, p.Directions)
	return base
}
