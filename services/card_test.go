package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemurr-coffee/lang"
	"lemurr-coffee/models"
)

func callbacks(c Card) []string {
	var out []string
	for _, row := range c.Buttons {
		for _, b := range row {
			out = append(out, b.CallbackData)
		}
	}
	return out
}

func TestBuildHomeCard(t *testing.T) {
	c := BuildHomeCard(DefaultSettings(), 3, lang.Ru)
	assert.True(t, strings.HasPrefix(c.Text, "☕ Lemurr Coffee"))
	assert.Contains(t, c.Text, "Добро пожаловать в Lemurr Coffee")
	assert.ElementsMatch(t, []string{CbMenu, CbNew, CbSale, CbCity, CbInfo, CbCart}, callbacks(c))
	last := c.Buttons[len(c.Buttons)-1][0]
	assert.Equal(t, "🛒 Корзина (3)", last.Text)
}

func TestBuildMenuCard(t *testing.T) {
	c := BuildMenuCard(0, lang.En)
	cbs := callbacks(c)
	for _, cat := range models.Categories {
		assert.Contains(t, cbs, "cat:"+string(cat))
	}
	assert.Contains(t, cbs, CbHome)
}

func TestItemLine(t *testing.T) {
	frappe := models.Item{ID: "4", Name: "Фраппе", Description: "Холодный", Price: 320, Discount: models.Int(15)}
	line := ItemLine(lang.Ru, frappe)
	assert.Contains(t, line, "-15%")
	assert.Contains(t, line, "320₽ → 272₽")

	zero := models.Item{ID: "z", Name: "Zero", Price: 100, Discount: models.Int(0), IsNew: true}
	line = ItemLine(lang.Ru, zero)
	assert.NotContains(t, line, "%")
	assert.Contains(t, line, "NEW")
	assert.Contains(t, line, "100₽")
}

func TestBuildItemsCard(t *testing.T) {
	items := DefaultSeed().Items[:2]
	c := BuildItemsCard("Кофе", items, 1, lang.Ru)
	assert.Equal(t, []string{"add:1"}, callbacks(Card{Buttons: c.Buttons[:1]}))
	assert.Equal(t, "add:2", c.Buttons[1][0].CallbackData)
	assert.Contains(t, c.Buttons[0][0].Text, "180₽")

	empty := BuildItemsCard("Кофе", nil, 0, lang.Ru)
	assert.Contains(t, empty.Text, lang.T(lang.Ru, "section_empty"))
	require.Len(t, empty.Buttons, 1)
}

func TestBuildCartCard(t *testing.T) {
	s := NewShop(DefaultSeed())
	s.AddToCart(1, "4")
	s.AddToCart(1, "4")
	s.AddToCart(1, "1")

	c := BuildCartCard(s.Cart(1), lang.Ru)
	assert.Contains(t, c.Text, "Итого: 724₽")
	assert.Contains(t, c.Text, "Фраппе с малиной — 272₽ × 2")
	require.Len(t, c.Buttons, 4)
	assert.Equal(t, []string{"dec:4", CbCart, "inc:4", "rm:4"}, callbacks(Card{Buttons: c.Buttons[:1]}))
	assert.Equal(t, CbOrder, c.Buttons[2][0].CallbackData)

	empty := BuildCartCard(CartView{}, lang.En)
	assert.Contains(t, empty.Text, "Your cart is empty")
	assert.NotContains(t, callbacks(empty), CbOrder)
}

func TestBuildCitiesAndContacts(t *testing.T) {
	c := BuildCitiesCard([]string{"Москва", "Казань"}, 0, lang.Ru)
	assert.Less(t, strings.Index(c.Text, "Москва"), strings.Index(c.Text, "Казань"))

	info := BuildContactsCard(DefaultSettings(), 0, lang.Ru)
	assert.Contains(t, info.Text, "+7 (495) 123-45-67")
	assert.Contains(t, info.Text, "hello@lemurr-coffee.ru")
}

func TestBuildAdminCards(t *testing.T) {
	items := BuildAdminItemsCard(DefaultSeed().Items, lang.Ru)
	cbs := callbacks(items)
	assert.Contains(t, cbs, "adm:new:2")
	assert.Contains(t, cbs, "adm:del:5")
	assert.Contains(t, cbs, CbAdmAdd)

	cities := BuildAdminCitiesCard([]string{"Москва", "Казань"}, lang.Ru)
	assert.Equal(t, CityDeleteData(1, "Казань"), cities.Buttons[1][0].CallbackData)
	assert.NotEqual(t, CityToken("Москва"), CityToken("Казань"))
	assert.LessOrEqual(t, len(CityDeleteData(999, "Санкт-Петербург")), 64)

	draft := DefaultSettings()
	draft.Phone = "+7 000"
	set := BuildAdminSettingsCard(draft, []models.SettingsField{models.FieldPhone}, lang.Ru)
	assert.Contains(t, set.Text, "✏️ Телефон")
	assert.Contains(t, set.Text, "Несохранённых изменений: 1")
	assert.Contains(t, callbacks(set), "adm:set:heroTitle")
	assert.Contains(t, callbacks(set), CbAdmSave)
}

func TestBuildFlowCards(t *testing.T) {
	assert.Len(t, BuildCategoryPickCard(lang.Ru).Buttons, len(models.Categories))
	assert.Equal(t, []string{"adm:isnew:yes", "adm:isnew:no"}, callbacks(BuildYesNoCard(lang.En)))
	assert.Equal(t, []string{"lang:ru", "lang:en"}, callbacks(BuildLanguageCard(lang.Ru)))
}
