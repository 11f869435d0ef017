package main

import (
	"fmt"
	"nanum-admin/backend/services"
	"nanum-admin/console"

	"github.com/spf13/cobra"
)

// editor is the part of a console form the flags drive
type editor interface {
	Set(field, value string) map[string]string
	Value(field string) string
	ApplyAddress(console.AddressLookup)
}

type fieldFlag struct {
	name  string
	field string
	usage string
}

var groupFieldFlags = []fieldFlag{
	{"name", services.FieldName, "group name (max 15)"},
	{"org", services.FieldOrganizationName, "organization name (max 25)"},
	{"manager", services.FieldManagerName, "manager name (max 20)"},
	{"detail", services.FieldDetailAddress, "detail address"},
	{"description", services.FieldDescription, "description (max 500)"},
}

var targetFieldFlags = []fieldFlag{
	{"name", services.FieldName, "recipient name"},
	{"type", services.FieldTargetType, "수급자 | 차상위 | 일반저소득"},
	{"household", services.FieldTargetHousehold, "독거어르신 | 조손가구 | 저소득1인가구 | 겨울철에너지취약계층"},
	{"detail", services.FieldDetailAddress, "detail address"},
	{"reason", services.FieldApplicationReason, "application reason (max 1000)"},
	{"directions", services.FieldDirections, "directions (max 500)"},
}

func addFormFlags(cmd *cobra.Command, fields []fieldFlag) {
	for _, f := range fields {
		cmd.Flags().String(f.name, "", f.usage)
	}
	cmd.Flags().String("zipcode", "", "zipcode")
	cmd.Flags().String("address", "", "road address")
	cmd.Flags().String("mobile", "", "mobile phone, e.g. 010-1234-5678")
	cmd.Flags().String("phone", "", `office phone, e.g. 02-123-4567 ("" clears it)`)
}

// applyFormFlags copies every flag the user set onto the form
func applyFormFlags(cmd *cobra.Command, form editor, fields []fieldFlag) error {
	flags := cmd.Flags()
	for _, f := range fields {
		if flags.Changed(f.name) {
			v, _ := flags.GetString(f.name)
			form.Set(f.field, v)
		}
	}

	if flags.Changed("zipcode") || flags.Changed("address") {
		lookup := console.AddressLookup{
			Zonecode: form.Value(services.FieldZipcode),
			Address:  form.Value(services.FieldAddress),
		}
		if flags.Changed("zipcode") {
			lookup.Zonecode, _ = flags.GetString("zipcode")
		}
		if flags.Changed("address") {
			lookup.Address, _ = flags.GetString("address")
		}
		form.ApplyAddress(lookup)
	}

	if flags.Changed("mobile") {
		v, _ := flags.GetString("mobile")
		if err := setPhone(form, v, services.FieldMobilePhoneArea, services.FieldMobilePhoneMiddle, services.FieldMobilePhoneLast); err != nil {
			return err
		}
	}
	if flags.Changed("phone") {
		v, _ := flags.GetString("phone")
		if err := setPhone(form, v, services.FieldPhoneArea, services.FieldPhoneMiddle, services.FieldPhoneLast); err != nil {
			return err
		}
	}
	return nil
}

func setPhone(form editor, raw, areaField, middleField, lastField string) error {
	parts := services.ParsePhone(raw)
	if raw != "" && parts.IsZero() {
		return fmt.Errorf("전화번호 형식을 확인해주세요: %s", raw)
	}
	if parts.Area != "" {
		form.Set(areaField, parts.Area)
	}
	form.Set(middleField, parts.Middle)
	form.Set(lastField, parts.Last)
	return nil
}
