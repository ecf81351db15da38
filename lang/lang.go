// Package lang holds the user-facing strings of both bots.
package lang

import (
	"fmt"
	"strings"
)

const (
	Ru = "ru"
	En = "en"
)

// Default is used when a user has not picked a language.
var Default = Ru

// Normalize maps a Telegram language code ("ru", "en-US", "") to a supported one.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	switch {
	case strings.HasPrefix(code, Ru):
		return Ru
	case strings.HasPrefix(code, En):
		return En
	}
	return Default
}

// Supported reports whether code has a message table.
func Supported(code string) bool {
	_, ok := messages[code]
	return ok
}

// T returns the message for key in language code, formatted with args.
// Missing translations fall back to Russian, then to the key itself.
func T(code, key string, args ...interface{}) string {
	msg, ok := messages[code][key]
	if !ok {
		msg, ok = messages[Ru][key]
	}
	if !ok {
		msg = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

var messages = map[string]map[string]string{
	Ru: {
		"btn_menu":     "☕ Меню",
		"btn_new":      "🆕 Новинки",
		"btn_sale":     "🔥 Скидки",
		"btn_cities":   "🌍 Наши города",
		"btn_contacts": "📞 Контакты",
		"btn_cart":     "🛒 Корзина (%d)",
		"btn_back":     "« Назад",
		"btn_home":     "🏠 Главная",
		"btn_add":      "➕ %s — %d₽",
		"btn_order":    "✅ Оформить заказ",
		"btn_yes":      "Да",
		"btn_no":       "Нет",

		"cat_coffee":  "Кофе",
		"cat_tea":     "Чай",
		"cat_cold":    "Холодные напитки",
		"cat_dessert": "Десерты",

		"menu_header":     "☕ Наше меню\n\nВыберите раздел:",
		"section_empty":   "Здесь пока пусто.",
		"new_header":      "🆕 Новинки",
		"sale_header":     "🔥 Скидки",
		"cities_header":   "🌍 Наши города",
		"city_line":       "📍 %s — найти кофейню",
		"contacts_header": "📞 Контакты",
		"contacts_hours":  "🕒 Ежедневно с 7:00 до 23:00",
		"badge_new":       "NEW",

		"cart_header":  "🛒 Корзина\nВаш заказ",
		"cart_empty":   "Корзина пуста",
		"cart_total":   "Итого: %d₽",
		"added":        "Добавлено в корзину",
		"unavailable":  "Этой позиции больше нет в меню.",
		"order_stub":   "Спасибо! Онлайн-оформление заказа скоро появится.",
		"reset_done":   "Корзина очищена.",
		"choose_lang":  "Выберите язык / Choose language",
		"lang_changed": "Язык: русский",

		"adm_panel":            "⚙️ Панель управления сайтом",
		"adm_denied":           "🔒 Нет доступа к панели управления.",
		"adm_btn_items":        "☕ Напитки",
		"adm_btn_add":          "➕ Добавить напиток",
		"adm_btn_cities":       "🌍 Города",
		"adm_btn_settings":     "🛠 Настройки",
		"adm_items_header":     "Существующие напитки",
		"adm_items_empty":      "Меню пусто.",
		"adm_ask_name":         "Название напитка:",
		"adm_ask_desc":         "Описание напитка («-» без описания):",
		"adm_ask_price":        "Цена (₽):",
		"adm_bad_price":        "Цена должна быть целым неотрицательным числом.",
		"adm_ask_category":     "Категория:",
		"adm_ask_new":          "Отметить как новинку?",
		"adm_ask_discount":     "Скидка в процентах (0–100) или «-» без скидки:",
		"adm_bad_discount":     "Скидка должна быть числом от 0 до 100 или «-».",
		"adm_item_added":       "✅ Добавлен: %s — %d₽",
		"adm_item_rejected":    "Напиток не добавлен: нужны название и цена.",
		"adm_item_deleted":     "🗑 Напиток удалён.",
		"adm_item_toggled":     "⭐ Отметка «новинка» изменена.",
		"adm_missing":          "Напиток не найден.",
		"adm_cancelled":        "Отменено.",
		"adm_cities_header":    "Города присутствия",
		"adm_cities_empty":     "Список городов пуст.",
		"adm_btn_add_city":     "➕ Добавить город",
		"adm_ask_city":         "Название города:",
		"adm_city_added":       "✅ Город добавлен: %s",
		"adm_city_ignored":     "Пустое название, город не добавлен.",
		"adm_city_deleted":     "🗑 Удалено записей: %d",
		"adm_city_stale":       "Список городов изменился, проверьте и нажмите ещё раз.",
		"adm_export_caption":   "Текущее меню, города и настройки (SEED_FILE).",
		"adm_settings_header":  "🛠 Настройки (черновик)",
		"adm_settings_unsaved": "Несохранённых изменений: %d",
		"adm_btn_save":         "💾 Сохранить настройки",
		"adm_btn_reset":        "↩️ Сбросить черновик",
		"adm_ask_field":        "Новое значение для «%s»:",
		"adm_field_set":        "Черновик обновлён. Нажмите «Сохранить настройки», чтобы опубликовать.",
		"adm_field_ignored":    "Пустое значение, поле не изменено.",
		"adm_settings_saved":   "✅ Настройки сохранены.",
		"adm_draft_reset":      "Черновик сброшен.",

		"field_title":        "Название сайта",
		"field_description":  "Описание",
		"field_heroTitle":    "Заголовок главной страницы",
		"field_heroSubtitle": "Подзаголовок",
		"field_phone":        "Телефон",
		"field_email":        "Email",
		"field_address":      "Адрес",
	},
	En: {
		"btn_menu":     "☕ Menu",
		"btn_new":      "🆕 New",
		"btn_sale":     "🔥 Deals",
		"btn_cities":   "🌍 Our cities",
		"btn_contacts": "📞 Contacts",
		"btn_cart":     "🛒 Cart (%d)",
		"btn_back":     "« Back",
		"btn_home":     "🏠 Home",
		"btn_add":      "➕ %s — %d₽",
		"btn_order":    "✅ Place order",
		"btn_yes":      "Yes",
		"btn_no":       "No",

		"cat_coffee":  "Coffee",
		"cat_tea":     "Tea",
		"cat_cold":    "Cold drinks",
		"cat_dessert": "Desserts",

		"menu_header":     "☕ Our menu\n\nPick a section:",
		"section_empty":   "Nothing here yet.",
		"new_header":      "🆕 New",
		"sale_header":     "🔥 Deals",
		"cities_header":   "🌍 Our cities",
		"city_line":       "📍 %s — find a café",
		"contacts_header": "📞 Contacts",
		"contacts_hours":  "🕒 Daily 7:00 to 23:00",
		"badge_new":       "NEW",

		"cart_header":  "🛒 Cart\nYour order",
		"cart_empty":   "Your cart is empty",
		"cart_total":   "Total: %d₽",
		"added":        "Added to cart",
		"unavailable":  "This item is no longer on the menu.",
		"order_stub":   "Thank you! Online ordering is coming soon.",
		"reset_done":   "Cart cleared.",
		"choose_lang":  "Выберите язык / Choose language",
		"lang_changed": "Language: English",

		"adm_panel":            "⚙️ Site control panel",
		"adm_denied":           "🔒 You have no access to the control panel.",
		"adm_btn_items":        "☕ Drinks",
		"adm_btn_add":          "➕ Add drink",
		"adm_btn_cities":       "🌍 Cities",
		"adm_btn_settings":     "🛠 Settings",
		"adm_items_header":     "Current drinks",
		"adm_items_empty":      "The menu is empty.",
		"adm_ask_name":         "Drink name:",
		"adm_ask_desc":         "Drink description (\"-\" for none):",
		"adm_ask_price":        "Price (₽):",
		"adm_bad_price":        "Price must be a whole non-negative number.",
		"adm_ask_category":     "Category:",
		"adm_ask_new":          "Mark as new?",
		"adm_ask_discount":     "Discount percent (0–100) or \"-\" for none:",
		"adm_bad_discount":     "Discount must be a number from 0 to 100 or \"-\".",
		"adm_item_added":       "✅ Added: %s — %d₽",
		"adm_item_rejected":    "Drink not added: name and price are required.",
		"adm_item_deleted":     "🗑 Drink deleted.",
		"adm_item_toggled":     "⭐ New flag toggled.",
		"adm_missing":          "Drink not found.",
		"adm_cancelled":        "Cancelled.",
		"adm_cities_header":    "Cities",
		"adm_cities_empty":     "No cities yet.",
		"adm_btn_add_city":     "➕ Add city",
		"adm_ask_city":         "City name:",
		"adm_city_added":       "✅ City added: %s",
		"adm_city_ignored":     "Blank name, no city added.",
		"adm_city_deleted":     "🗑 Entries removed: %d",
		"adm_city_stale":       "The city list has changed, check it and press again.",
		"adm_export_caption":   "Current menu, cities and settings (SEED_FILE).",
		"adm_settings_header":  "🛠 Settings (draft)",
		"adm_settings_unsaved": "Unsaved changes: %d",
		"adm_btn_save":         "💾 Save settings",
		"adm_btn_reset":        "↩️ Reset draft",
		"adm_ask_field":        "New value for “%s”:",
		"adm_field_set":        "Draft updated. Press “Save settings” to publish.",
		"adm_field_ignored":    "Blank value, field unchanged.",
		"adm_settings_saved":   "✅ Settings saved.",
		"adm_draft_reset":      "Draft reset.",

		"field_title":        "Site name",
		"field_description":  "Description",
		"field_heroTitle":    "Home page title",
		"field_heroSubtitle": "Subtitle",
		"field_phone":        "Phone",
		"field_email":        "Email",
		"field_address":      "Address",
	},
}
