package models

import (
	"strings"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Organization{},
		&Group{},
		&Target{},
	)
}

// StripZipcode trims address and drops a leading "<zipcode> " the console prepends.
func StripZipcode(zipcode, address string) string {
	address = strings.TrimSpace(address)
	zipcode = strings.TrimSpace(zipcode)
	if zipcode == "" {
		return address
	}
	if address == zipcode {
		return ""
	}
	if rest, ok := strings.CutPrefix(address, zipcode+" "); ok {
		return strings.TrimSpace(rest)
	}
	return address
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func trim(s string) string { return strings.TrimSpace(s) }

// phones are stored as bare digits
func stripPhone(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s))
}
