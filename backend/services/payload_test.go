package services

import (
	"nanum-admin/backend/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGroupInput() models.GroupInput {
	return models.GroupInput{
		Name:             "겨울나눔",
		OrganizationName: "행복복지관",
		ManagerName:      "홍길동",
		Zipcode:          "06236",
		Address:          "서울 강남구 테헤란로 123",
		MobilePhone:      "01012345678",
	}
}

func TestValidatePayloadGroup(t *testing.T) {
	in := validGroupInput()
	assert.NoError(t, ValidatePayload(in))

	in.Phone = "021234567"
	assert.NoError(t, ValidatePayload(in))

	long := strings.Repeat("가", 501)
	in.Description = &long
	err := ValidatePayload(in)
	var pe *PayloadError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, map[string]string{"description": "max"}, pe.Fields)
	assert.Equal(t, "입력 형식을 확인해주세요: 설명", pe.Error())
}

func TestValidatePayloadMessages(t *testing.T) {
	in := validGroupInput()
	in.Name = ""
	in.Address = ""
	in.MobilePhone = "010-1234-5678"

	err := ValidatePayload(in)
	var pe *PayloadError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "required", pe.Fields["name"])
	assert.Equal(t, "mobile_phone", pe.Fields["mobilePhone"])
	assert.Equal(t, "다음 필수 항목을 입력해주세요: 이름, 주소 / 입력 형식을 확인해주세요: 핸드폰", pe.Error())
}

func TestValidatePayloadTarget(t *testing.T) {
	in := models.TargetInput{
		Name:              "김철수",
		TargetType:        "수급자",
		TargetHousehold:   "독거어르신",
		Address:           "서울 강남구 역삼로 1",
		MobilePhone:       "01098765432",
		ApplicationReason: "난방비 지원",
	}
	assert.NoError(t, ValidatePayload(in))

	in.TargetType = "기타"
	in.Phone = "12345"
	err := ValidatePayload(in)
	var pe *PayloadError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, map[string]string{"targetType": "target_type", "phone": "phone_number"}, pe.Fields)
}
