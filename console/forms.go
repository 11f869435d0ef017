package console

import (
	"errors"
	"nanum-admin/backend/models"
	"nanum-admin/backend/services"
	"sort"
	"strings"
)

// ErrInvalidForm is matched by every FormError
var ErrInvalidForm = errors.New("입력 정보를 확인해주세요.")

// FormError carries the per-field messages that blocked a submit
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	b.WriteString(ErrInvalidForm.Error())
	for _, f := range fields {
		b.WriteString("\n  ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e.Fields[f])
	}
	return b.String()
}

func (e *FormError) Is(target error) bool { return target == ErrInvalidForm }

// AddressLookup is what the postcode widget hands back
type AddressLookup struct {
	Zonecode string `json:"zonecode"`
	Address  string `json:"address"`
}

// form holds raw field values and their current errors
type form struct {
	rules  services.RuleSet
	values map[string]string
	errors map[string]string
}

func newForm(rules services.RuleSet) form {
	return form{
		rules: rules,
		values: map[string]string{
			services.FieldMobilePhoneArea: services.DefaultMobileArea,
			services.FieldPhoneArea:       services.DefaultOfficeArea,
		},
		errors: map[string]string{},
	}
}

// Set stores a field value and revalidates it with its linked fields. It returns
// the messages of every field it touched; "" clears a field's error.
func (f *form) Set(field, value string) map[string]string {
	f.values[field] = value
	touched := f.rules.Revalidate(field, f.values)
	for name, msg := range touched {
		if msg == "" {
			delete(f.errors, name)
		} else {
			f.errors[name] = msg
		}
	}
	return touched
}

func (f *form) Value(field string) string {
	return f.values[field]
}

// Errors returns the current per-field messages
func (f *form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Validate checks every field and replaces the error set
func (f *form) Validate() bool {
	f.errors = f.rules.ValidateAll(f.values)
	return len(f.errors) == 0
}

// ApplyAddress fills zipcode and address from the postcode widget
func (f *form) ApplyAddress(a AddressLookup) {
	f.Set(services.FieldZipcode, a.Zonecode)
	f.Set(services.FieldAddress, a.Address)
}

func (f *form) load(mobile, office string) {
	m := services.ParsePhone(mobile)
	if m.Area == "" {
		m.Area = services.DefaultMobileArea
	}
	o := services.ParsePhone(office)
	if o.Area == "" {
		o.Area = services.DefaultOfficeArea
	}
	f.values[services.FieldMobilePhoneArea] = m.Area
	f.values[services.FieldMobilePhoneMiddle] = m.Middle
	f.values[services.FieldMobilePhoneLast] = m.Last
	f.values[services.FieldPhoneArea] = o.Area
	f.values[services.FieldPhoneMiddle] = o.Middle
	f.values[services.FieldPhoneLast] = o.Last
}

func (f *form) trimmed(field string) string {
	return strings.TrimSpace(f.values[field])
}

func (f *form) mobilePhone() string {
	return services.PhoneParts{
		Area:   f.values[services.FieldMobilePhoneArea],
		Middle: f.values[services.FieldMobilePhoneMiddle],
		Last:   f.values[services.FieldMobilePhoneLast],
	}.Join()
}

// officePhone is empty unless both editable parts are filled
func (f *form) officePhone() string {
	if f.trimmed(services.FieldPhoneMiddle) == "" || f.trimmed(services.FieldPhoneLast) == "" {
		return ""
	}
	return services.PhoneParts{
		Area:   f.values[services.FieldPhoneArea],
		Middle: f.values[services.FieldPhoneMiddle],
		Last:   f.values[services.FieldPhoneLast],
	}.Join()
}

// fullAddress is "<zipcode> <address>" as the API expects it
func (f *form) fullAddress() string {
	return strings.TrimSpace(f.values[services.FieldZipcode] + " " + f.values[services.FieldAddress])
}

func (f *form) check() error {
	if !f.Validate() {
		return &FormError{Fields: f.Errors()}
	}
	return nil
}

// GroupForm edits a group
type GroupForm struct {
	form
}

func NewGroupForm() *GroupForm {
	return &GroupForm{form: newForm(services.GroupRules)}
}

// GroupFormFrom loads an existing group for editing
func GroupFormFrom(g models.Group) *GroupForm {
	f := NewGroupForm()
	f.values[services.FieldName] = g.Name
	f.values[services.FieldOrganizationName] = g.OrganizationName
	f.values[services.FieldManagerName] = g.ManagerName
	f.values[services.FieldZipcode] = g.Zipcode
	f.values[services.FieldAddress] = models.StripZipcode(g.Zipcode, g.Address)
	f.values[services.FieldDetailAddress] = g.DetailAddress
	f.values[services.FieldDescription] = g.Description
	f.load(g.MobilePhone, g.Phone)
	return f
}

// Submit validates the form and builds the API payload
func (f *GroupForm) Submit() (models.GroupInput, error) {
	if err := f.check(); err != nil {
		return models.GroupInput{}, err
	}
	desc := f.values[services.FieldDescription]
	return models.GroupInput{
		Name:             f.values[services.FieldName],
		OrganizationName: f.values[services.FieldOrganizationName],
		ManagerName:      f.values[services.FieldManagerName],
		Zipcode:          f.values[services.FieldZipcode],
		Address:          f.fullAddress(),
		DetailAddress:    f.values[services.FieldDetailAddress],
		MobilePhone:      f.mobilePhone(),
		Phone:            f.officePhone(),
		Description:      &desc,
	}, nil
}

// TargetForm edits a recipient
type TargetForm struct {
	form
}

func NewTargetForm() *TargetForm {
	return &TargetForm{form: newForm(services.TargetRules)}
}

// TargetFormFrom loads an existing recipient for editing
func TargetFormFrom(t models.TargetView) *TargetForm {
	f := NewTargetForm()
	f.values[services.FieldName] = t.Name
	f.values[services.FieldTargetType] = t.TargetType
	f.values[services.FieldTargetHousehold] = t.TargetHousehold
	f.values[services.FieldZipcode] = t.Zipcode
	f.values[services.FieldAddress] = models.StripZipcode(t.Zipcode, t.Address)
	f.values[services.FieldDetailAddress] = t.DetailAddress
	f.values[services.FieldApplicationReason] = t.ApplicationReason
	f.values[services.FieldDirections] = t.Directions
	f.load(t.MobilePhone, t.Phone)
	return f
}

func (f *TargetForm) Submit() (models.TargetInput, error) {
	if err := f.check(); err != nil {
		return models.TargetInput{}, err
	}
	return models.TargetInput{
		Name:              f.values[services.FieldName],
		TargetType:        f.values[services.FieldTargetType],
		TargetHousehold:   f.values[services.FieldTargetHousehold],
		Zipcode:           f.values[services.FieldZipcode],
		Address:           f.fullAddress(),
		DetailAddress:     f.values[services.FieldDetailAddress],
		MobilePhone:       f.mobilePhone(),
		Phone:             f.officePhone(),
		ApplicationReason: f.values[services.FieldApplicationReason],
		Directions:        f.values[services.FieldDirections],
	}, nil
}
