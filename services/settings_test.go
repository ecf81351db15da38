package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lemurr-coffee/models"
)

func TestSettingsDraftIsInvisibleUntilSaved(t *testing.T) {
	c := newTestCatalog()
	published := c.Settings()
	d := NewSettingsDraft(published)

	assert.True(t, d.Set(models.FieldTitle, "Lemurr Coffee & Tea"))
	assert.Equal(t, published, c.Settings())
	assert.Equal(t, []models.SettingsField{models.FieldTitle}, d.Changed(c.Settings()))

	d.Save(c)
	assert.Equal(t, "Lemurr Coffee & Tea", c.Settings().Title)
	assert.Empty(t, d.Changed(c.Settings()))
}

func TestSettingsDraftSet(t *testing.T) {
	d := NewSettingsDraft(DefaultSettings())
	assert.False(t, d.Set(models.FieldPhone, "   "))
	assert.False(t, d.Set(models.SettingsField("logo"), "x"))
	assert.True(t, d.Set(models.FieldPhone, "  +7 000  "))
	assert.Equal(t, "+7 000", d.Settings().Phone)
}

func TestSettingsDraftReset(t *testing.T) {
	published := DefaultSettings()
	d := NewSettingsDraft(published)
	d.Set(models.FieldEmail, "x@y.z")
	d.Set(models.FieldAddress, "Казань")
	assert.Len(t, d.Changed(published), 2)

	d.Reset(published)
	assert.Equal(t, published, d.Settings())
}

func TestSettingsDraftRebase(t *testing.T) {
	published := DefaultSettings()
	d := NewSettingsDraft(published)
	d.Set(models.FieldTitle, "Lemurr")

	next := published.With(models.FieldPhone, "+7 222")
	next = next.With(models.FieldTitle, "Lemurr Bar")
	d.Rebase(next)

	got := d.Settings()
	assert.Equal(t, "+7 222", got.Phone)
	assert.Equal(t, "Lemurr", got.Title, "own edits survive the rebase")
	assert.Equal(t, []models.SettingsField{models.FieldTitle}, d.Edited())
}

func TestSettingsDraftSaveOverlaysEditedFields(t *testing.T) {
	c := newTestCatalog()
	d := NewSettingsDraft(c.Settings())
	d.Set(models.FieldDescription, "Кофе и чай")

	other := c.Settings().With(models.FieldAddress, "Казань, ул. Баумана 1")
	c.SaveSettings(other)

	d.Save(c)
	assert.Equal(t, "Казань, ул. Баумана 1", c.Settings().Address)
	assert.Equal(t, "Кофе и чай", c.Settings().Description)
	assert.Empty(t, d.Edited())
}
