package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemurr-coffee/models"
	"lemurr-coffee/services"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data   string
		want   callback
		wantOK bool
	}{
		{"home", callback{Action: "home"}, true},
		{"cart", callback{Action: "cart"}, true},
		{"cat:tea", callback{Action: "cat", Arg: "tea"}, true},
		{"add:4", callback{Action: "add", Arg: "4"}, true},
		{"add:6f1c-uuid:with-colon", callback{Action: "add", Arg: "6f1c-uuid:with-colon"}, true},
		{"lang:en", callback{Action: "lang", Arg: "en"}, true},
		{"adm:panel", callback{Action: "adm:panel"}, true},
		{"adm:new:2", callback{Action: "adm:new", Arg: "2"}, true},
		{"adm:city_del:0", callback{Action: "adm:city_del", Arg: "0"}, true},
		{"adm:set:heroTitle", callback{Action: "adm:set", Arg: "heroTitle"}, true},
		{"adm:isnew:yes", callback{Action: "adm:isnew", Arg: "yes"}, true},
		{"add:", callback{}, false},
		{"add", callback{}, false},
		{"adm:", callback{}, false},
		{"adm:bogus:1", callback{}, false},
		{"checkout:1", callback{}, false},
		{"", callback{}, false},
	}
	for _, tt := range tests {
		got, ok := parseCallback(tt.data)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseCallback(%q) = %+v, %v; want %+v, %v", tt.data, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCardCallbacksParse(t *testing.T) {
	shop := services.NewShop(services.DefaultSeed())
	shop.AddToCart(1, "4")
	draft, changed := shop.Draft(9)
	cards := []services.Card{
		services.BuildHomeCard(shop.Settings(), 1, "ru"),
		services.BuildMenuCard(1, "ru"),
		services.BuildItemsCard("x", shop.Items(), 1, "ru"),
		services.BuildCartCard(shop.Cart(1), "ru"),
		services.BuildLanguageCard("ru"),
		services.BuildAdminPanelCard("ru"),
		services.BuildAdminItemsCard(shop.Items(), "ru"),
		services.BuildAdminCitiesCard(shop.Cities(), "ru"),
		services.BuildAdminSettingsCard(draft, changed, "ru"),
		services.BuildCategoryPickCard("ru"),
		services.BuildYesNoCard("ru"),
	}
	for _, c := range cards {
		for _, row := range c.Buttons {
			for _, b := range row {
				_, ok := parseCallback(b.CallbackData)
				assert.True(t, ok, "unparseable callback %q on button %q", b.CallbackData, b.Text)
			}
		}
	}
}

func TestCallbackArgs(t *testing.T) {
	cities := []string{"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург"}
	cb, ok := parseCallback(services.CityDeleteData(2, "Новосибирск"))
	require.True(t, ok)
	name, ok := cb.cityTarget(cities)
	require.True(t, ok)
	assert.Equal(t, "Новосибирск", name)

	for _, data := range []string{"adm:city_del:3", "adm:city_del:-1:x", "adm:city_del:9:" + services.CityToken("Москва")} {
		cb, ok := parseCallback(data)
		require.True(t, ok, data)
		_, ok = cb.cityTarget(cities)
		assert.False(t, ok, data)
	}

	cb, _ = parseCallback("cat:cold")
	cat, ok := cb.category()
	require.True(t, ok)
	assert.Equal(t, models.CategoryCold, cat)

	cb, _ = parseCallback("cat:soup")
	_, ok = cb.category()
	assert.False(t, ok)

	cb, _ = parseCallback("adm:set:logo")
	_, ok = cb.field()
	assert.False(t, ok)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"320", 320, true},
		{" 1 200 ", 1200, true},
		{"350₽", 350, true},
		{"350 руб", 350, true},
		{"0", 0, true},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parsePrice(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parsePrice(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDiscount(t *testing.T) {
	d, ok := parseDiscount("15")
	require.True(t, ok)
	assert.Equal(t, 15, *d)

	d, ok = parseDiscount("20%")
	require.True(t, ok)
	assert.Equal(t, 20, *d)

	for _, none := range []string{"-", "0", ""} {
		d, ok = parseDiscount(none)
		assert.True(t, ok, none)
		assert.Nil(t, d, none)
	}
	for _, bad := range []string{"101", "-3", "half"} {
		_, ok = parseDiscount(bad)
		assert.False(t, ok, bad)
	}
}

func TestCityDeleteAfterListChanged(t *testing.T) {
	shop := services.NewShop(services.DefaultSeed())
	card := services.BuildAdminCitiesCard(shop.Cities(), "ru")
	button := card.Buttons[2][0]
	require.Contains(t, button.Text, "Новосибирск")

	// Another admin removes a city above it before the button is pressed.
	shop.DeleteCity("Москва")

	cb, ok := parseCallback(button.CallbackData)
	require.True(t, ok)
	_, ok = cb.cityTarget(shop.Cities())
	assert.False(t, ok, "position now points at a different city")
	assert.Equal(t, []string{"Санкт-Петербург", "Новосибирск", "Екатеринбург"}, shop.Cities())

	fresh := services.BuildAdminCitiesCard(shop.Cities(), "ru")
	cb, _ = parseCallback(fresh.Buttons[1][0].CallbackData)
	name, ok := cb.cityTarget(shop.Cities())
	require.True(t, ok)
	assert.Equal(t, "Новосибирск", name)
}
