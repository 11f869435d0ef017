package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStripZipcode(t *testing.T) {
	tests := []struct {
		zip, address, want string
	}{
		{"06236", "06236 서울 강남구", "서울 강남구"},
		{"06236", " 서울 강남구 ", "서울 강남구"},
		{"", "06236 서울 강남구", "06236 서울 강남구"},
		{"06236", "06236", ""},
		{"12345", "06236 서울 강남구", "06236 서울 강남구"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripZipcode(tt.zip, tt.address), "%q %q", tt.zip, tt.address)
	}
}

func TestGroupInputNormalize(t *testing.T) {
	desc := "  메모  "
	in := GroupInput{
		Name:        " 겨울나눔 ",
		Zipcode:     "06236",
		Address:     "06236 서울 강남구",
		MobilePhone: "010-1234-5678",
		Phone:       "02 123 4567",
		Description: &desc,
	}
	in.Normalize()
	assert.Equal(t, "겨울나눔", in.Name)
	assert.Equal(t, "서울 강남구", in.Address)
	assert.Equal(t, "01012345678", in.MobilePhone)
	assert.Equal(t, "021234567", in.Phone)
	assert.Equal(t, "메모", *in.Description)
}

func TestMergeGroupUpdate(t *testing.T) {
	base := GroupInputFrom(Group{
		Name:        "겨울나눔",
		ManagerName: "홍길동",
		Address:     "서울 강남구",
		MobilePhone: "01012345678",
		Phone:       "021234567",
		Description: "기존",
	})
	empty := ""
	merged := MergeGroupUpdate(base, GroupInput{ManagerName: "김담당", Description: &empty})

	assert.Equal(t, "겨울나눔", merged.Name)
	assert.Equal(t, "김담당", merged.ManagerName)
	assert.Equal(t, "021234567", merged.Phone)
	assert.Equal(t, "기존", *merged.Description)

	var g Group
	merged.Apply(&g)
	assert.Equal(t, "김담당", g.ManagerName)
	assert.Equal(t, "기존", g.Description)
}

func TestGroupFullAddress(t *testing.T) {
	g := Group{Zipcode: "06236", Address: "서울 강남구", DetailAddress: "4층"}
	assert.Equal(t, "06236 서울 강남구 4층", g.FullAddress())
	assert.Equal(t, "서울 강남구", Group{Address: "서울 강남구"}.FullAddress())
}

func TestTargetView(t *testing.T) {
	created := time.Date(2024, 3, 5, 9, 30, 0, 0, time.Local)
	v := Target{
		ID:        3,
		Name:      "김철수",
		Zipcode:   "06236",
		Address:   "서울 강남구 역삼로 1",
		CreatedAt: created,
	}.View()

	assert.Equal(t, uint(3), v.ID)
	assert.Equal(t, "06236 서울 강남구 역삼로 1", v.Address)
	assert.Equal(t, "2024-03-05", v.RegisteredAt)
	assert.Equal(t, TargetStatusActive, v.Status)

	assert.Equal(t, "서울", Target{Address: "서울"}.View().Address)
	assert.Empty(t, Target{}.View().RegisteredAt)
}

func TestTargetPatchMerge(t *testing.T) {
	base := TargetInputFrom(Target{
		Name:        "김철수",
		TargetType:  "수급자",
		Phone:       "021234567",
		Directions:  "역 앞",
		MobilePhone: "01098765432",
	})
	name := "김영수"
	blank := ""
	merged := TargetPatch{Name: &name, Phone: &blank}.Merge(base)

	assert.Equal(t, "김영수", merged.Name)
	assert.Equal(t, "수급자", merged.TargetType)
	assert.Empty(t, merged.Phone)
	assert.Equal(t, "역 앞", merged.Directions)
	assert.Equal(t, "01098765432", merged.MobilePhone)
}

func TestTargetInputNormalize(t *testing.T) {
	in := TargetInput{Zipcode: " 06236 ", Address: "06236 서울", MobilePhone: " 010-9876-5432 "}
	in.Normalize()
	assert.Equal(t, "06236", in.Zipcode)
	assert.Equal(t, "서울", in.Address)
	assert.Equal(t, "01098765432", in.MobilePhone)

	var target Target
	in.Apply(&target)
	assert.Equal(t, "서울", target.Address)
}
