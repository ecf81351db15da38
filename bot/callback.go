package bot

import (
	"strconv"
	"strings"

	"lemurr-coffee/models"
	"lemurr-coffee/services"
)

// callback is parsed callback_data: Action is the part before the last
// argument ("add", "adm:del"), Arg the rest ("4", "" for bare actions).
type callback struct {
	Action string
	Arg    string
}

// bare actions carry no argument; keyed actions require one.
var (
	bareActions = map[string]bool{
		services.CbHome: true, services.CbMenu: true, services.CbNew: true, services.CbSale: true,
		services.CbCart: true, services.CbOrder: true, services.CbCity: true, services.CbInfo: true,
		services.CbAdmPanel: true, services.CbAdmItems: true, services.CbAdmAdd: true,
		services.CbAdmCities: true, services.CbAdmCityAdd: true, services.CbAdmSettings: true,
		services.CbAdmSave: true, services.CbAdmReset: true,
	}
	keyedActions = map[string]bool{
		"cat": true, "add": true, "inc": true, "dec": true, "rm": true, "lang": true,
		"adm:new": true, "adm:del": true, "adm:city_del": true, "adm:set": true,
		"adm:cat": true, "adm:isnew": true,
	}
)

func parseCallback(data string) (callback, bool) {
	if bareActions[data] {
		return callback{Action: data}, true
	}
	head := data
	prefix := ""
	if strings.HasPrefix(data, "adm:") {
		prefix = "adm:"
		head = strings.TrimPrefix(data, "adm:")
	}
	i := strings.IndexByte(head, ':')
	if i <= 0 || i == len(head)-1 {
		return callback{}, false
	}
	cb := callback{Action: prefix + head[:i], Arg: head[i+1:]}
	if !keyedActions[cb.Action] {
		return callback{}, false
	}
	return cb, true
}

// cityTarget resolves the argument of adm:city_del ("<index>:<token>") against
// the current city list. It fails when the list changed since the button was
// rendered and the entry at that index is no longer the city the button showed.
func (c callback) cityTarget(cities []string) (string, bool) {
	idx, token, ok := strings.Cut(c.Arg, ":")
	if !ok || token == "" {
		return "", false
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(cities) {
		return "", false
	}
	if services.CityToken(cities[i]) != token {
		return "", false
	}
	return cities[i], true
}

func (c callback) category() (models.Category, bool) {
	cat := models.Category(c.Arg)
	return cat, cat.Valid()
}

func (c callback) field() (models.SettingsField, bool) {
	f := models.SettingsField(c.Arg)
	return f, f.Valid()
}

// parsePrice accepts whole rubles, tolerating spaces and a trailing ₽ or "руб".
func parsePrice(text string) (int64, bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, "₽")
	s = strings.TrimSuffix(strings.TrimSpace(s), "руб")
	s = strings.ReplaceAll(s, " ", "")
	p, err := strconv.ParseInt(s, 10, 64)
	if err != nil || p < 0 {
		return 0, false
	}
	return p, true
}

// parseDiscount reads the admin discount answer. "-" and "0" mean no discount.
func parseDiscount(text string) (*int, bool) {
	s := strings.TrimSpace(text)
	if s == "-" || s == "" {
		return nil, true
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 || d > 100 {
		return nil, false
	}
	if d == 0 {
		return nil, true
	}
	return models.Int(d), true
}
