package services

import (
	"errors"
	"nanum-admin/backend/models"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var payloadValidator *validator.Validate

func init() {
	payloadValidator = validator.New()
	payloadValidator.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must := func(tag string, fn validator.Func) {
		if err := payloadValidator.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("mobile_phone", func(fl validator.FieldLevel) bool {
		return IsMobilePhone(fl.Field().String())
	})
	must("phone_number", func(fl validator.FieldLevel) bool {
		return IsPhoneNumber(fl.Field().String())
	})
	must("target_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.TargetTypes, fl.Field().String())
	})
	must("target_household", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.TargetHouseholds, fl.Field().String())
	})
}

// fieldLabels name payload fields in API error messages.
var fieldLabels = map[string]string{
	"name":              "이름",
	"organizationName":  "기관명",
	"managerName":       "담당자명",
	"zipcode":           "우편번호",
	"address":           "주소",
	"mobilePhone":       "핸드폰",
	"phone":             "일반전화",
	"description":       "설명",
	"targetType":        "대상구분",
	"targetHousehold":   "대상가구",
	"applicationReason": "신청사유",
	"directions":        "찾아가는 길",
}

// PayloadError lists the fields of an API payload that failed validation.
type PayloadError struct {
	Fields map[string]string // json field -> rule tag
	order  []string
}

func (e *PayloadError) Error() string {
	var missing, invalid []string
	for _, f := range e.order {
		label := fieldLabels[f]
		if label == "" {
			label = f
		}
		if e.Fields[f] == "required" {
			missing = append(missing, label)
		} else {
			invalid = append(invalid, label)
		}
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "다음 필수 항목을 입력해주세요: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "입력 형식을 확인해주세요: "+strings.Join(invalid, ", "))
	}
	return strings.Join(parts, " / ")
}

// ValidatePayload checks a GroupInput or TargetInput against its struct tags.
func ValidatePayload(v any) error {
	err := payloadValidator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	pe := &PayloadError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := pe.Fields[fe.Field()]; !seen {
			pe.order = append(pe.order, fe.Field())
		}
		pe.Fields[fe.Field()] = fe.Tag()
	}
	return pe
}
