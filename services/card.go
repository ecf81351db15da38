package services

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"lemurr-coffee/lang"
	"lemurr-coffee/models"
)

// CardButton is one inline button (text + callback_data or url).
type CardButton struct {
	Text         string
	CallbackData string
	URL          string // if set, use as URL button instead of callback
}

// Card is the text and optional inline keyboard of one bot screen.
type Card struct {
	Text    string
	Buttons [][]CardButton
}

// Storefront callback data.
const (
	CbHome  = "home"
	CbMenu  = "menu"
	CbNew   = "new"
	CbSale  = "sale"
	CbCart  = "cart"
	CbOrder = "order"
	CbCity  = "cities"
	CbInfo  = "contacts"
)

// Admin callback data.
const (
	CbAdmPanel    = "adm:panel"
	CbAdmItems    = "adm:items"
	CbAdmAdd      = "adm:add"
	CbAdmCities   = "adm:cities"
	CbAdmCityAdd  = "adm:city_add"
	CbAdmSettings = "adm:settings"
	CbAdmSave     = "adm:save"
	CbAdmReset    = "adm:reset"
)

func categoryLabel(langCode string, c models.Category) string {
	return lang.T(langCode, "cat_"+string(c))
}

// ItemLine renders one menu entry: name, badges, description and price.
func ItemLine(langCode string, it models.Item) string {
	var b strings.Builder
	b.WriteString("• " + it.Name)
	if it.IsNew {
		b.WriteString(" 🆕 " + lang.T(langCode, "badge_new"))
	}
	if it.Discount != nil && *it.Discount > 0 {
		fmt.Fprintf(&b, " 🔥 -%d%%", *it.Discount)
	}
	if it.Description != "" {
		b.WriteString("\n  " + it.Description)
	}
	if price := DisplayPrice(it); price != it.Price {
		fmt.Fprintf(&b, "\n  %d₽ → %d₽", it.Price, price)
	} else {
		fmt.Fprintf(&b, "\n  %d₽", it.Price)
	}
	return b.String()
}

func cartButton(langCode string, count int) CardButton {
	return CardButton{Text: lang.T(langCode, "btn_cart", count), CallbackData: CbCart}
}

func backHomeRow(langCode string, count int) []CardButton {
	return []CardButton{
		{Text: lang.T(langCode, "btn_home"), CallbackData: CbHome},
		cartButton(langCode, count),
	}
}

// BuildHomeCard is the landing screen: hero copy plus navigation.
// cartCount is the badge figure (sum of quantities).
func BuildHomeCard(s models.SiteSettings, cartCount int, langCode string) Card {
	text := "☕ " + s.Title
	if s.HeroTitle != "" {
		text += "\n\n" + s.HeroTitle
	}
	if s.HeroSubtitle != "" {
		text += "\n" + s.HeroSubtitle
	}
	if s.Description != "" {
		text += "\n\n" + s.Description
	}
	return Card{
		Text: text,
		Buttons: [][]CardButton{
			{{Text: lang.T(langCode, "btn_menu"), CallbackData: CbMenu}},
			{
				{Text: lang.T(langCode, "btn_new"), CallbackData: CbNew},
				{Text: lang.T(langCode, "btn_sale"), CallbackData: CbSale},
			},
			{
				{Text: lang.T(langCode, "btn_cities"), CallbackData: CbCity},
				{Text: lang.T(langCode, "btn_contacts"), CallbackData: CbInfo},
			},
			{cartButton(langCode, cartCount)},
		},
	}
}

// BuildMenuCard lists the menu sections.
func BuildMenuCard(cartCount int, langCode string) Card {
	var rows [][]CardButton
	for i := 0; i < len(models.Categories); i += 2 {
		row := []CardButton{{Text: categoryLabel(langCode, models.Categories[i]), CallbackData: "cat:" + string(models.Categories[i])}}
		if i+1 < len(models.Categories) {
			c := models.Categories[i+1]
			row = append(row, CardButton{Text: categoryLabel(langCode, c), CallbackData: "cat:" + string(c)})
		}
		rows = append(rows, row)
	}
	rows = append(rows, backHomeRow(langCode, cartCount))
	return Card{Text: lang.T(langCode, "menu_header"), Buttons: rows}
}

// BuildItemsCard renders a list of items with one "add" button per item.
// Used for a menu section and for the new / discount pages.
func BuildItemsCard(header string, items []models.Item, cartCount int, langCode string) Card {
	if len(items) == 0 {
		return Card{
			Text:    header + "\n\n" + lang.T(langCode, "section_empty"),
			Buttons: [][]CardButton{backHomeRow(langCode, cartCount)},
		}
	}
	lines := make([]string, 0, len(items))
	rows := make([][]CardButton, 0, len(items)+1)
	for _, it := range items {
		lines = append(lines, ItemLine(langCode, it))
		rows = append(rows, []CardButton{{
			Text:         lang.T(langCode, "btn_add", it.Name, DisplayPrice(it)),
			CallbackData: "add:" + it.ID,
		}})
	}
	rows = append(rows, backHomeRow(langCode, cartCount))
	return Card{Text: header + "\n\n" + strings.Join(lines, "\n\n"), Buttons: rows}
}

// BuildCategoryCard is one menu section.
func BuildCategoryCard(cat models.Category, items []models.Item, cartCount int, langCode string) Card {
	return BuildItemsCard(categoryLabel(langCode, cat), items, cartCount, langCode)
}

// BuildCitiesCard lists the cities in insertion order.
func BuildCitiesCard(cities []string, cartCount int, langCode string) Card {
	text := lang.T(langCode, "cities_header") + "\n"
	if len(cities) == 0 {
		text += "\n" + lang.T(langCode, "section_empty")
	}
	for _, c := range cities {
		text += "\n" + lang.T(langCode, "city_line", c)
	}
	return Card{Text: text, Buttons: [][]CardButton{backHomeRow(langCode, cartCount)}}
}

// BuildContactsCard shows the published contact fields.
func BuildContactsCard(s models.SiteSettings, cartCount int, langCode string) Card {
	text := lang.T(langCode, "contacts_header") + "\n\n" +
		"📞 " + s.Phone + "\n" +
		"📧 " + s.Email + "\n" +
		"📍 " + s.Address + "\n" +
		lang.T(langCode, "contacts_hours")
	return Card{Text: text, Buttons: [][]CardButton{backHomeRow(langCode, cartCount)}}
}

// BuildCartCard renders the cart with ➖ qty ➕ 🗑 controls per line.
// The total is the cart total rounded once; line subtotals are not shown.
func BuildCartCard(v CartView, langCode string) Card {
	if v.Empty() {
		return Card{
			Text: lang.T(langCode, "cart_header") + "\n\n" + lang.T(langCode, "cart_empty"),
			Buttons: [][]CardButton{
				{{Text: lang.T(langCode, "btn_menu"), CallbackData: CbMenu}},
				{{Text: lang.T(langCode, "btn_home"), CallbackData: CbHome}},
			},
		}
	}
	var b strings.Builder
	b.WriteString(lang.T(langCode, "cart_header") + "\n")
	rows := make([][]CardButton, 0, len(v.Lines)+2)
	for _, l := range v.Lines {
		fmt.Fprintf(&b, "\n%s — %d₽ × %d", l.Item.Name, DisplayPrice(l.Item), l.Quantity)
		id := l.Item.ID
		rows = append(rows, []CardButton{
			{Text: "➖", CallbackData: "dec:" + id},
			{Text: strconv.Itoa(l.Quantity) + " · " + l.Item.Name, CallbackData: CbCart},
			{Text: "➕", CallbackData: "inc:" + id},
			{Text: "🗑", CallbackData: "rm:" + id},
		})
	}
	b.WriteString("\n\n" + lang.T(langCode, "cart_total", v.DisplayTotal))
	rows = append(rows,
		[]CardButton{{Text: lang.T(langCode, "btn_order"), CallbackData: CbOrder}},
		[]CardButton{{Text: lang.T(langCode, "btn_home"), CallbackData: CbHome}},
	)
	return Card{Text: b.String(), Buttons: rows}
}

// BuildLanguageCard offers the supported languages.
func BuildLanguageCard(langCode string) Card {
	return Card{
		Text: lang.T(langCode, "choose_lang"),
		Buttons: [][]CardButton{{
			{Text: "🇷🇺 Русский", CallbackData: "lang:" + lang.Ru},
			{Text: "🇬🇧 English", CallbackData: "lang:" + lang.En},
		}},
	}
}

// ---- admin ----

func admBackRow(langCode string) []CardButton {
	return []CardButton{{Text: lang.T(langCode, "btn_back"), CallbackData: CbAdmPanel}}
}

// BuildAdminPanelCard is the admin landing screen.
func BuildAdminPanelCard(langCode string) Card {
	return Card{
		Text: lang.T(langCode, "adm_panel"),
		Buttons: [][]CardButton{
			{
				{Text: lang.T(langCode, "adm_btn_items"), CallbackData: CbAdmItems},
				{Text: lang.T(langCode, "adm_btn_add"), CallbackData: CbAdmAdd},
			},
			{
				{Text: lang.T(langCode, "adm_btn_cities"), CallbackData: CbAdmCities},
				{Text: lang.T(langCode, "adm_btn_settings"), CallbackData: CbAdmSettings},
			},
		},
	}
}

// BuildAdminItemsCard lists every item with toggle-new and delete buttons.
func BuildAdminItemsCard(items []models.Item, langCode string) Card {
	text := lang.T(langCode, "adm_items_header")
	if len(items) == 0 {
		text += "\n\n" + lang.T(langCode, "adm_items_empty")
	}
	rows := make([][]CardButton, 0, len(items)+2)
	for _, it := range items {
		text += "\n\n" + ItemLine(langCode, it) + "\n  " + categoryLabel(langCode, it.Category)
		star := "☆"
		if it.IsNew {
			star = "⭐"
		}
		rows = append(rows, []CardButton{
			{Text: star + " " + it.Name, CallbackData: "adm:new:" + it.ID},
			{Text: "🗑", CallbackData: "adm:del:" + it.ID},
		})
	}
	rows = append(rows,
		[]CardButton{{Text: lang.T(langCode, "adm_btn_add"), CallbackData: CbAdmAdd}},
		admBackRow(langCode),
	)
	return Card{Text: text, Buttons: rows}
}

// CityToken is a short fingerprint of a city name. Callback data is limited to
// 64 bytes, so delete buttons carry the token instead of the name itself.
func CityToken(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}

// CityDeleteData is the callback data of the delete button for cities[i].
func CityDeleteData(i int, name string) string {
	return "adm:city_del:" + strconv.Itoa(i) + ":" + CityToken(name)
}

// BuildAdminCitiesCard lists the cities. Delete buttons carry the list
// position and the name's token; see CityDeleteData.
func BuildAdminCitiesCard(cities []string, langCode string) Card {
	text := lang.T(langCode, "adm_cities_header")
	if len(cities) == 0 {
		text += "\n\n" + lang.T(langCode, "adm_cities_empty")
	}
	rows := make([][]CardButton, 0, len(cities)+2)
	for i, c := range cities {
		rows = append(rows, []CardButton{{Text: "🗑 " + c, CallbackData: CityDeleteData(i, c)}})
	}
	rows = append(rows,
		[]CardButton{{Text: lang.T(langCode, "adm_btn_add_city"), CallbackData: CbAdmCityAdd}},
		admBackRow(langCode),
	)
	return Card{Text: text, Buttons: rows}
}

// SettingsFieldLabel is the admin-facing name of a settings field.
func SettingsFieldLabel(langCode string, f models.SettingsField) string {
	return lang.T(langCode, "field_"+string(f))
}

// BuildAdminSettingsCard shows the draft values; changed fields are marked with ✏️.
func BuildAdminSettingsCard(draft models.SiteSettings, changed []models.SettingsField, langCode string) Card {
	dirty := make(map[models.SettingsField]bool, len(changed))
	for _, f := range changed {
		dirty[f] = true
	}
	var b strings.Builder
	b.WriteString(lang.T(langCode, "adm_settings_header"))
	rows := make([][]CardButton, 0, len(models.SettingsFields)+3)
	for _, f := range models.SettingsFields {
		mark := ""
		if dirty[f] {
			mark = "✏️ "
		}
		fmt.Fprintf(&b, "\n\n%s%s:\n%s", mark, SettingsFieldLabel(langCode, f), draft.Get(f))
		rows = append(rows, []CardButton{{Text: mark + SettingsFieldLabel(langCode, f), CallbackData: "adm:set:" + string(f)}})
	}
	if len(changed) > 0 {
		b.WriteString("\n\n" + lang.T(langCode, "adm_settings_unsaved", len(changed)))
	}
	rows = append(rows,
		[]CardButton{
			{Text: lang.T(langCode, "adm_btn_save"), CallbackData: CbAdmSave},
			{Text: lang.T(langCode, "adm_btn_reset"), CallbackData: CbAdmReset},
		},
		admBackRow(langCode),
	)
	return Card{Text: b.String(), Buttons: rows}
}

// BuildCategoryPickCard is the category step of the add-item flow.
func BuildCategoryPickCard(langCode string) Card {
	rows := make([][]CardButton, 0, len(models.Categories))
	for _, c := range models.Categories {
		rows = append(rows, []CardButton{{Text: categoryLabel(langCode, c), CallbackData: "adm:cat:" + string(c)}})
	}
	return Card{Text: lang.T(langCode, "adm_ask_category"), Buttons: rows}
}

// BuildYesNoCard is the isNew step of the add-item flow.
func BuildYesNoCard(langCode string) Card {
	return Card{
		Text: lang.T(langCode, "adm_ask_new"),
		Buttons: [][]CardButton{{
			{Text: lang.T(langCode, "btn_yes"), CallbackData: "adm:isnew:yes"},
			{Text: lang.T(langCode, "btn_no"), CallbackData: "adm:isnew:no"},
		}},
	}
}
