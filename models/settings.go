package models

// SiteSettings is the editable storefront copy.
type SiteSettings struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

// SettingsField names one editable field of SiteSettings.
type SettingsField string

const (
	FieldTitle        SettingsField = "title"
	FieldDescription  SettingsField = "description"
	FieldHeroTitle    SettingsField = "heroTitle"
	FieldHeroSubtitle SettingsField = "heroSubtitle"
	FieldPhone        SettingsField = "phone"
	FieldEmail        SettingsField = "email"
	FieldAddress      SettingsField = "address"
)

// SettingsFields lists the editable fields in the order the admin panel shows them.
var SettingsFields = []SettingsField{
	FieldTitle, FieldDescription, FieldHeroTitle, FieldHeroSubtitle, FieldPhone, FieldEmail, FieldAddress,
}

// Valid reports whether f names a SiteSettings field.
func (f SettingsField) Valid() bool {
	for _, known := range SettingsFields {
		if f == known {
			return true
		}
	}
	return false
}

// Get returns the value of field f, or "" for an unknown field.
func (s SiteSettings) Get(f SettingsField) string {
	switch f {
	case FieldTitle:
		return s.Title
	case FieldDescription:
		return s.Description
	case FieldHeroTitle:
		return s.HeroTitle
	case FieldHeroSubtitle:
		return s.HeroSubtitle
	case FieldPhone:
		return s.Phone
	case FieldEmail:
		return s.Email
	case FieldAddress:
		return s.Address
	}
	return ""
}

// With returns a copy of s with field f set to v. Unknown fields leave s unchanged.
func (s SiteSettings) With(f SettingsField, v string) SiteSettings {
	switch f {
	case FieldTitle:
		s.Title = v
	case FieldDescription:
		s.Description = v
	case FieldHeroTitle:
		s.HeroTitle = v
	case FieldHeroSubtitle:
		s.HeroSubtitle = v
	case FieldPhone:
		s.Phone = v
	case FieldEmail:
		s.Email = v
	case FieldAddress:
		s.Address = v
	}
	return s
}
