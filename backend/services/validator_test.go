package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupNameLength(t *testing.T) {
	assert.Equal(t, "그룹명을 입력해주세요.", GroupRules.Validate(FieldName, "", nil))
	assert.Equal(t, "그룹명을 입력해주세요.", GroupRules.Validate(FieldName, "   ", nil))
	assert.Empty(t, GroupRules.Validate(FieldName, strings.Repeat("가", 15), nil))
	assert.Equal(t, "그룹명은 15자 이내로 입력해주세요.", GroupRules.Validate(FieldName, strings.Repeat("가", 16), nil))
	assert.Equal(t, "그룹명은 15자 이내로 입력해주세요.", GroupRules.Validate(FieldName, strings.Repeat("a", 20), nil))
}

func TestGroupRuleTable(t *testing.T) {
	tests := []struct {
		field string
		value string
		want  string
	}{
		{FieldOrganizationName, strings.Repeat("가", 25), ""},
		{FieldOrganizationName, strings.Repeat("가", 26), "기관명은 25자 이내로 입력해주세요."},
		{FieldOrganizationName, "", "기관명을 입력해주세요."},
		{FieldManagerName, strings.Repeat("가", 20), ""},
		{FieldManagerName, strings.Repeat("가", 21), "담당자명은 20자 이내로 입력해주세요."},
		{FieldAddress, " ", "주소를 입력해주세요."},
		{FieldAddress, "서울 강남구", ""},
		{FieldDescription, "", ""},
		{FieldDescription, strings.Repeat("가", 500), ""},
		{FieldDescription, strings.Repeat("가", 501), "설명은 500자 이내로 입력해주세요."},
		{FieldMobilePhoneMiddle, "", "핸드폰 번호를 입력해주세요."},
		{FieldMobilePhoneMiddle, "123", "핸드폰 중간번호는 4자리여야 합니다."},
		{FieldMobilePhoneMiddle, "12a4", "핸드폰 중간번호는 4자리여야 합니다."},
		{FieldMobilePhoneMiddle, "1234", ""},
		{FieldMobilePhoneLast, "12345", "핸드폰 끝번호는 4자리여야 합니다."},
		{FieldMobilePhoneLast, "5678", ""},
		{FieldMobilePhoneArea, "010", ""},
		{FieldMobilePhoneArea, "070", "지역번호를 목록에서 선택해주세요."},
		{FieldPhoneArea, "031", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupRules.Validate(tt.field, tt.value, nil))
		})
	}
}

func TestOfficePhoneAllOrNothing(t *testing.T) {
	tests := []struct {
		name       string
		middle     string
		last       string
		wantMiddle string
		wantLast   string
	}{
		{"middle only", "123", "", "일반전화 번호를 모두 입력해주세요.", "일반전화 번호를 모두 입력해주세요."},
		{"last only", "", "5678", "일반전화 번호를 모두 입력해주세요.", "일반전화 번호를 모두 입력해주세요."},
		{"both empty", "", "", "", ""},
		{"complete 4 digit", "1234", "5678", "", ""},
		{"complete 3 digit", "123", "5678", "", ""},
		{"short middle", "12", "5678", "일반전화 중간번호는 3~4자리여야 합니다.", ""},
		{"long last", "123", "56789", "", "일반전화 끝번호는 4자리여야 합니다."},
	}
	for _, rules := range []RuleSet{GroupRules, TargetRules} {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				values := map[string]string{FieldPhoneMiddle: tt.middle, FieldPhoneLast: tt.last}
				assert.Equal(t, tt.wantMiddle, rules.Validate(FieldPhoneMiddle, tt.middle, values))
				assert.Equal(t, tt.wantLast, rules.Validate(FieldPhoneLast, tt.last, values))
			})
		}
	}
}

func TestRevalidateUpdatesSibling(t *testing.T) {
	values := map[string]string{FieldPhoneMiddle: "123", FieldPhoneLast: ""}
	errs := GroupRules.Revalidate(FieldPhoneMiddle, values)
	assert.Equal(t, map[string]string{
		FieldPhoneMiddle: "일반전화 번호를 모두 입력해주세요.",
		FieldPhoneLast:   "일반전화 번호를 모두 입력해주세요.",
	}, errs)

	// clearing the filled field waives the requirement on both
	values[FieldPhoneMiddle] = ""
	errs = GroupRules.Revalidate(FieldPhoneMiddle, values)
	assert.Equal(t, map[string]string{FieldPhoneMiddle: "", FieldPhoneLast: ""}, errs)
}

func TestTargetRules(t *testing.T) {
	assert.Equal(t, "대상자명은 필수 입력 항목입니다.", TargetRules.Validate(FieldName, "", nil))
	assert.Empty(t, TargetRules.Validate(FieldName, strings.Repeat("가", 40), nil))
	assert.Equal(t, "대상구분을 목록에서 선택해주세요.", TargetRules.Validate(FieldTargetType, "기타", nil))
	assert.Empty(t, TargetRules.Validate(FieldTargetType, "차상위", nil))
	assert.Empty(t, TargetRules.Validate(FieldTargetHousehold, "조손가구", nil))
	assert.Equal(t, "주소는 필수 입력 항목입니다.", TargetRules.Validate(FieldZipcode, "", nil))
	assert.Equal(t, "신청사유는 필수 입력 항목입니다.", TargetRules.Validate(FieldApplicationReason, "", nil))
	assert.Empty(t, TargetRules.Validate(FieldApplicationReason, strings.Repeat("가", 1000), nil))
	assert.Equal(t, "신청사유는 1000자 이내로 입력해주세요.", TargetRules.Validate(FieldApplicationReason, strings.Repeat("가", 1001), nil))
	assert.Empty(t, TargetRules.Validate(FieldDirections, "", nil))
	assert.Equal(t, "찾아가는 길은 500자 이내로 입력해주세요.", TargetRules.Validate(FieldDirections, strings.Repeat("가", 501), nil))
}

func TestValidateAll(t *testing.T) {
	errs := GroupRules.ValidateAll(map[string]string{
		FieldName:              "겨울나눔",
		FieldOrganizationName:  "행복복지관",
		FieldManagerName:       "홍길동",
		FieldAddress:           "서울 강남구 테헤란로 123",
		FieldMobilePhoneArea:   "010",
		FieldMobilePhoneMiddle: "1234",
		FieldMobilePhoneLast:   "5678",
		FieldPhoneArea:         "02",
	})
	assert.Empty(t, errs)

	errs = GroupRules.ValidateAll(map[string]string{FieldMobilePhoneArea: "010"})
	assert.Contains(t, errs, FieldName)
	assert.Contains(t, errs, FieldAddress)
	assert.Contains(t, errs, FieldMobilePhoneMiddle)
	assert.NotContains(t, errs, FieldPhoneMiddle)
	assert.NotContains(t, errs, FieldDescription)
}

func TestUnknownFieldIsValid(t *testing.T) {
	assert.Empty(t, GroupRules.Validate("nickname", "", nil))
}
