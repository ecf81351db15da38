package services

import (
	"strings"

	"lemurr-coffee/models"
)

// SettingsDraft is the admin's working copy of the site settings.
// Edits stay here until the draft is saved into a Catalog. The draft
// remembers the published settings it was taken from (base), so only the
// fields the admin actually edited are carried over at save time.
type SettingsDraft struct {
	base   models.SiteSettings
	values models.SiteSettings
}

// NewSettingsDraft starts a draft from the currently published settings.
func NewSettingsDraft(published models.SiteSettings) *SettingsDraft {
	return &SettingsDraft{base: published, values: published}
}

// Set changes one field of the draft. Blank values and unknown fields are ignored.
func (d *SettingsDraft) Set(f models.SettingsField, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || !f.Valid() {
		return false
	}
	d.values = d.values.With(f, v)
	return true
}

// Settings returns the draft values.
func (d *SettingsDraft) Settings() models.SiteSettings {
	return d.values
}

// Edited lists the fields changed since the draft was started or last rebased.
func (d *SettingsDraft) Edited() []models.SettingsField {
	return d.Changed(d.base)
}

// Rebase moves the draft onto newer published settings, keeping its own edits.
// Fields it did not edit pick up whatever was published in the meantime.
func (d *SettingsDraft) Rebase(published models.SiteSettings) {
	next := published
	for _, f := range d.Edited() {
		next = next.With(f, d.values.Get(f))
	}
	d.base = published
	d.values = next
}

// Reset throws away all edits and starts again from published.
func (d *SettingsDraft) Reset(published models.SiteSettings) {
	d.base = published
	d.values = published
}

// Changed lists the fields whose draft value differs from published.
func (d *SettingsDraft) Changed(published models.SiteSettings) []models.SettingsField {
	var out []models.SettingsField
	for _, f := range models.SettingsFields {
		if d.values.Get(f) != published.Get(f) {
			out = append(out, f)
		}
	}
	return out
}

// Save publishes the draft's edits into c on top of the current published
// settings. Another admin's earlier save is kept for every field this draft
// did not touch.
func (d *SettingsDraft) Save(c *Catalog) {
	d.Rebase(c.Settings())
	c.SaveSettings(d.values)
	d.base = d.values
}
