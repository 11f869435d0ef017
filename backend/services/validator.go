package services

import (
	"nanum-admin/backend/models"
	"slices"
	"strings"
	"unicode/utf8"
)

// Form field names, shared by the console forms and the rule sets.
const (
	FieldName              = "name"
	FieldOrganizationName  = "organizationName"
	FieldManagerName       = "managerName"
	FieldZipcode           = "zipcode"
	FieldAddress           = "address"
	FieldDetailAddress     = "detailAddress"
	FieldMobilePhoneArea   = "mobilePhoneArea"
	FieldMobilePhoneMiddle = "mobilePhoneMiddle"
	FieldMobilePhoneLast   = "mobilePhoneLast"
	FieldPhoneArea         = "phoneArea"
	FieldPhoneMiddle       = "phoneMiddle"
	FieldPhoneLast         = "phoneLast"
	FieldDescription       = "description"
	FieldTargetType        = "targetType"
	FieldTargetHousehold   = "targetHousehold"
	FieldApplicationReason = "applicationReason"
	FieldDirections        = "directions"
)

// Rule describes how one form field is checked.
type Rule struct {
	Required bool
	// MaxLen is a limit in characters; 0 means unlimited.
	MaxLen int
	// MinDigits/MaxDigits constrain a digits-only value; 0 disables the check.
	MinDigits int
	MaxDigits int
	// OneOf restricts the value to a fixed list.
	OneOf []string
	// Partner makes the pair all-or-nothing: if either is filled both are required.
	Partner string
	// Linked fields are recomputed whenever this one changes.
	Linked []string

	RequiredMsg string
	TooLongMsg  string
	LengthMsg   string
	ChoiceMsg   string
}

// RuleSet maps field names to rules.
type RuleSet map[string]Rule

// Validate checks one field value. related holds the current values of the other
// fields and is consulted for partner rules. It returns "" when the value is valid.
func (rs RuleSet) Validate(field, value string, related map[string]string) string {
	r, ok := rs[field]
	if !ok {
		return ""
	}
	trimmed := strings.TrimSpace(value)

	if r.Partner != "" {
		other := strings.TrimSpace(related[r.Partner])
		if trimmed == "" && other == "" {
			return ""
		}
		if trimmed == "" || other == "" {
			return r.RequiredMsg
		}
	} else if trimmed == "" {
		if r.Required {
			return r.RequiredMsg
		}
		return ""
	}

	if r.MaxLen > 0 && utf8.RuneCountInString(value) > r.MaxLen {
		return r.TooLongMsg
	}
	if r.MinDigits > 0 {
		n := len(trimmed)
		if n < r.MinDigits || n > r.MaxDigits || DigitsOnly(trimmed) != trimmed {
			return r.LengthMsg
		}
	}
	if len(r.OneOf) > 0 && !slices.Contains(r.OneOf, trimmed) {
		return r.ChoiceMsg
	}
	return ""
}

// Revalidate recomputes the error for field and every field linked to it, using
// the full current values. Entries with an empty message mean "no error".
func (rs RuleSet) Revalidate(field string, values map[string]string) map[string]string {
	out := map[string]string{field: rs.Validate(field, values[field], values)}
	for _, linked := range rs[field].Linked {
		out[linked] = rs.Validate(linked, values[linked], values)
	}
	return out
}

// ValidateAll checks every field with a rule and returns only the failures.
func (rs RuleSet) ValidateAll(values map[string]string) map[string]string {
	errs := map[string]string{}
	for field := range rs {
		if msg := rs.Validate(field, values[field], values); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

const (
	msgMobileRequired    = "핸드폰 번호를 입력해주세요."
	msgMobileMiddle      = "핸드폰 중간번호는 4자리여야 합니다."
	msgMobileLast        = "핸드폰 끝번호는 4자리여야 합니다."
	msgOfficeIncomplete  = "일반전화 번호를 모두 입력해주세요."
	msgOfficeMiddle      = "일반전화 중간번호는 3~4자리여야 합니다."
	msgOfficeLast        = "일반전화 끝번호는 4자리여야 합니다."
	msgDirectionsTooLong = "찾아가는 길은 500자 이내로 입력해주세요."
	msgAreaChoice        = "지역번호를 목록에서 선택해주세요."
)

// phoneRules are identical on both forms.
func phoneRules(rs RuleSet) RuleSet {
	rs[FieldMobilePhoneArea] = Rule{
		Required: true, OneOf: MobileAreaCodes,
		RequiredMsg: msgMobileRequired, ChoiceMsg: msgAreaChoice,
	}
	rs[FieldPhoneArea] = Rule{
		OneOf: OfficeAreaCodes, ChoiceMsg: msgAreaChoice,
	}
	rs[FieldMobilePhoneMiddle] = Rule{
		Required: true, MinDigits: 4, MaxDigits: 4, Linked: []string{FieldMobilePhoneLast},
		RequiredMsg: msgMobileRequired, LengthMsg: msgMobileMiddle,
	}
	rs[FieldMobilePhoneLast] = Rule{
		Required: true, MinDigits: 4, MaxDigits: 4, Linked: []string{FieldMobilePhoneMiddle},
		RequiredMsg: msgMobileRequired, LengthMsg: msgMobileLast,
	}
	rs[FieldPhoneMiddle] = Rule{
		MinDigits: 3, MaxDigits: 4, Partner: FieldPhoneLast, Linked: []string{FieldPhoneLast},
		RequiredMsg: msgOfficeIncomplete, LengthMsg: msgOfficeMiddle,
	}
	rs[FieldPhoneLast] = Rule{
		MinDigits: 4, MaxDigits: 4, Partner: FieldPhoneMiddle, Linked: []string{FieldPhoneMiddle},
		RequiredMsg: msgOfficeIncomplete, LengthMsg: msgOfficeLast,
	}
	return rs
}

// GroupRules validates the group form.
var GroupRules = phoneRules(RuleSet{
	FieldName: {
		Required: true, MaxLen: 15,
		RequiredMsg: "그룹명을 입력해주세요.", TooLongMsg: "그룹명은 15자 이내로 입력해주세요.",
	},
	FieldOrganizationName: {
		Required: true, MaxLen: 25,
		RequiredMsg: "기관명을 입력해주세요.", TooLongMsg: "기관명은 25자 이내로 입력해주세요.",
	},
	FieldManagerName: {
		Required: true, MaxLen: 20,
		RequiredMsg: "담당자명을 입력해주세요.", TooLongMsg: "담당자명은 20자 이내로 입력해주세요.",
	},
	FieldAddress: {
		Required: true, RequiredMsg: "주소를 입력해주세요.",
	},
	FieldDescription: {
		MaxLen: 500, TooLongMsg: "설명은 500자 이내로 입력해주세요.",
	},
})

// TargetRules validates the target form.
var TargetRules = phoneRules(RuleSet{
	FieldName: {
		Required: true, RequiredMsg: "대상자명은 필수 입력 항목입니다.",
	},
	FieldTargetType: {
		Required: true, OneOf: models.TargetTypes,
		RequiredMsg: "대상구분은 필수 입력 항목입니다.", ChoiceMsg: "대상구분을 목록에서 선택해주세요.",
	},
	FieldTargetHousehold: {
		Required: true, OneOf: models.TargetHouseholds,
		RequiredMsg: "대상가구는 필수 입력 항목입니다.", ChoiceMsg: "대상가구를 목록에서 선택해주세요.",
	},
	FieldZipcode: {
		Required: true, RequiredMsg: "주소는 필수 입력 항목입니다.",
	},
	FieldAddress: {
		Required: true, RequiredMsg: "주소는 필수 입력 항목입니다.",
	},
	FieldApplicationReason: {
		Required: true, MaxLen: 1000,
		RequiredMsg: "신청사유는 필수 입력 항목입니다.", TooLongMsg: "신청사유는 1000자 이내로 입력해주세요.",
	},
	FieldDirections: {
		MaxLen: 500, TooLongMsg: msgDirectionsTooLong,
	},
})
