package bot

import (
	"strings"
	"sync"

	"lemurr-coffee/config"
	"lemurr-coffee/lang"
	"lemurr-coffee/models"
	"lemurr-coffee/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	stepName     = "name"
	stepDesc     = "desc"
	stepPrice    = "price"
	stepCategory = "category"
	stepIsNew    = "isnew"
	stepDiscount = "discount"
	stepCity     = "city"
	stepField    = "field"
)

// adminFlow is the multi-message input an admin is in the middle of.
type adminFlow struct {
	Step  string
	Draft models.ItemDraft
	Field models.SettingsField // for stepField
	Value string               // city name or field value once done
}

func newItemFlow() *adminFlow {
	return &adminFlow{Step: stepName}
}

// acceptText consumes a typed answer. It returns the lang key to reply with
// and whether the flow is complete.
func (f *adminFlow) acceptText(text string) (string, bool) {
	text = strings.TrimSpace(text)
	switch f.Step {
	case stepName:
		if text == "" {
			return "adm_ask_name", false
		}
		f.Draft.Name = text
		f.Step = stepDesc
		return "adm_ask_desc", false
	case stepDesc:
		if text != "-" {
			f.Draft.Description = text
		}
		f.Step = stepPrice
		return "adm_ask_price", false
	case stepPrice:
		p, ok := parsePrice(text)
		if !ok {
			return "adm_bad_price", false
		}
		f.Draft.Price = models.Int64(p)
		f.Step = stepCategory
		return "adm_ask_category", false
	case stepCategory:
		cat, ok := models.ParseCategory(text)
		if !ok {
			return "adm_ask_category", false
		}
		return f.chooseCategory(cat)
	case stepIsNew:
		switch strings.ToLower(text) {
		case "yes", "да":
			return f.chooseIsNew(true)
		case "no", "нет":
			return f.chooseIsNew(false)
		}
		return "adm_ask_new", false
	case stepDiscount:
		d, ok := parseDiscount(text)
		if !ok {
			return "adm_bad_discount", false
		}
		f.Draft.Discount = d
		return "", true
	case stepCity, stepField:
		f.Value = text
		return "", true
	}
	return "", false
}

func (f *adminFlow) chooseCategory(cat models.Category) (string, bool) {
	if f.Step != stepCategory || !cat.Valid() {
		return "", false
	}
	f.Draft.Category = cat
	f.Step = stepIsNew
	return "adm_ask_new", false
}

func (f *adminFlow) chooseIsNew(isNew bool) (string, bool) {
	if f.Step != stepIsNew {
		return "", false
	}
	f.Draft.IsNew = isNew
	f.Step = stepDiscount
	return "adm_ask_discount", false
}

// AdminBot is the site control panel (ADMIN_TOKEN): items, cities and the settings draft.
type AdminBot struct {
	api     *tgbotapi.BotAPI
	shop    *services.Shop
	log     *zap.Logger
	lang    string
	allowed map[int64]bool
	state   map[int64]*adminFlow
	stateMu sync.RWMutex
}

// NewAdminBot creates the panel bot. An empty cfg.Telegram.AdminIDs lets anyone in.
func NewAdminBot(cfg *config.Config, shop *services.Shop, logger *zap.Logger) (*AdminBot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.AdminToken)
	if err != nil {
		return nil, err
	}
	allowed := make(map[int64]bool, len(cfg.Telegram.AdminIDs))
	for _, id := range cfg.Telegram.AdminIDs {
		allowed[id] = true
	}
	return &AdminBot{
		api:     api,
		shop:    shop,
		log:     logger.Named("admin"),
		lang:    lang.Normalize(cfg.App.DefaultLang),
		allowed: allowed,
		state:   make(map[int64]*adminFlow),
	}, nil
}

func (a *AdminBot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := a.api.GetUpdatesChan(u)

	a.log.Info("admin bot started", zap.String("username", a.api.Self.UserName))
	for update := range updates {
		if update.CallbackQuery != nil {
			a.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		msg := update.Message
		userID := msg.From.ID
		text := strings.TrimSpace(msg.Text)

		if !a.isAllowed(userID) {
			a.send(msg.Chat.ID, lang.T(a.lang, "adm_denied"))
			continue
		}
		if text == "/cancel" {
			a.cancelFlow(msg.Chat.ID, userID)
			continue
		}
		if text == "/start" {
			a.clearFlow(userID)
			a.showPanel(msg.Chat.ID, 0)
			continue
		}
		if text == "/export" {
			a.sendExport(msg.Chat.ID)
			continue
		}
		if a.handleFlow(msg.Chat.ID, userID, text) {
			continue
		}
		// No flow: show panel on any other message
		a.showPanel(msg.Chat.ID, 0)
	}
}

// Stop ends the update loop started by Start.
func (a *AdminBot) Stop() {
	a.api.StopReceivingUpdates()
}

func (a *AdminBot) isAllowed(userID int64) bool {
	return len(a.allowed) == 0 || a.allowed[userID]
}

func (a *AdminBot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := a.api.Send(msg); err != nil {
		a.log.Warn("send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendExport sends the current catalog as a seed file usable with SEED_SOURCE=file.
func (a *AdminBot) sendExport(chatID int64) {
	raw, err := a.shop.Snapshot().JSON()
	if err != nil {
		a.log.Error("export seed", zap.Error(err))
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "lemurr-seed.json", Bytes: raw})
	doc.Caption = lang.T(a.lang, "adm_export_caption")
	if _, err := a.api.Send(doc); err != nil {
		a.log.Warn("send export", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *AdminBot) show(chatID int64, messageID int, c services.Card) {
	showCard(a.api, a.log, chatID, messageID, c)
}

func (a *AdminBot) showPanel(chatID int64, messageID int) {
	a.show(chatID, messageID, services.BuildAdminPanelCard(a.lang))
}

func (a *AdminBot) showItems(chatID int64, messageID int) {
	a.show(chatID, messageID, services.BuildAdminItemsCard(a.shop.Items(), a.lang))
}

func (a *AdminBot) showCities(chatID int64, messageID int) {
	a.show(chatID, messageID, services.BuildAdminCitiesCard(a.shop.Cities(), a.lang))
}

func (a *AdminBot) showSettings(chatID int64, messageID int, userID int64) {
	draft, changed := a.shop.Draft(userID)
	a.show(chatID, messageID, services.BuildAdminSettingsCard(draft, changed, a.lang))
}

func (a *AdminBot) flow(userID int64) *adminFlow {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.state[userID]
}

func (a *AdminBot) setFlow(userID int64, f *adminFlow) {
	a.stateMu.Lock()
	a.state[userID] = f
	a.stateMu.Unlock()
}

func (a *AdminBot) clearFlow(userID int64) {
	a.stateMu.Lock()
	delete(a.state, userID)
	a.stateMu.Unlock()
}

func (a *AdminBot) cancelFlow(chatID, userID int64) {
	a.clearFlow(userID)
	a.send(chatID, lang.T(a.lang, "adm_cancelled"))
	a.showPanel(chatID, 0)
}

// prompt sends the reply for a flow step; choice steps get their button cards.
func (a *AdminBot) prompt(chatID int64, key string) {
	switch key {
	case "":
	case "adm_ask_category":
		a.show(chatID, 0, services.BuildCategoryPickCard(a.lang))
	case "adm_ask_new":
		a.show(chatID, 0, services.BuildYesNoCard(a.lang))
	default:
		a.send(chatID, lang.T(a.lang, key))
	}
}

// handleFlow feeds text into the admin's open flow. Returns false when no flow is open.
func (a *AdminBot) handleFlow(chatID, userID int64, text string) bool {
	a.stateMu.Lock()
	f := a.state[userID]
	var (
		key  string
		done bool
	)
	if f != nil {
		key, done = f.acceptText(text)
	}
	a.stateMu.Unlock()
	if f == nil {
		return false
	}
	if !done {
		a.prompt(chatID, key)
		return true
	}
	a.clearFlow(userID)
	a.finishFlow(chatID, userID, f)
	return true
}

func (a *AdminBot) finishFlow(chatID, userID int64, f *adminFlow) {
	switch f.Step {
	case stepDiscount:
		it, ok := a.shop.CreateItem(f.Draft)
		if !ok {
			a.send(chatID, lang.T(a.lang, "adm_item_rejected"))
			a.showPanel(chatID, 0)
			return
		}
		a.log.Info("item created", zap.String("item_id", it.ID), zap.String("name", it.Name), zap.Int64("admin_id", userID))
		a.send(chatID, lang.T(a.lang, "adm_item_added", it.Name, services.DisplayPrice(it)))
		a.showItems(chatID, 0)
	case stepCity:
		if !a.shop.AddCity(f.Value) {
			a.send(chatID, lang.T(a.lang, "adm_city_ignored"))
		} else {
			a.log.Info("city added", zap.String("city", strings.TrimSpace(f.Value)), zap.Int64("admin_id", userID))
			a.send(chatID, lang.T(a.lang, "adm_city_added", strings.TrimSpace(f.Value)))
		}
		a.showCities(chatID, 0)
	case stepField:
		if !a.shop.EditDraft(userID, f.Field, f.Value) {
			a.send(chatID, lang.T(a.lang, "adm_field_ignored"))
		} else {
			a.send(chatID, lang.T(a.lang, "adm_field_set"))
		}
		a.showSettings(chatID, 0, userID)
	}
}

func (a *AdminBot) answer(callbackID, text string) {
	if _, err := a.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		a.log.Debug("answer callback", zap.Error(err))
	}
}

func (a *AdminBot) handleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		a.answer(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	msgID := cq.Message.MessageID
	userID := cq.From.ID

	if !a.isAllowed(userID) {
		a.answer(cq.ID, lang.T(a.lang, "adm_denied"))
		return
	}
	cb, ok := parseCallback(cq.Data)
	if !ok || !strings.HasPrefix(cb.Action, "adm:") {
		a.answer(cq.ID, "")
		return
	}

	switch cb.Action {
	case services.CbAdmPanel:
		a.answer(cq.ID, "")
		a.showPanel(chatID, msgID)
	case services.CbAdmItems:
		a.answer(cq.ID, "")
		a.showItems(chatID, msgID)
	case services.CbAdmAdd:
		a.answer(cq.ID, "")
		a.setFlow(userID, newItemFlow())
		a.send(chatID, lang.T(a.lang, "adm_ask_name"))
	case "adm:cat", "adm:isnew":
		a.answer(cq.ID, "")
		a.handleChoice(chatID, userID, cb)
	case "adm:new":
		if !a.shop.ToggleNew(cb.Arg) {
			a.answer(cq.ID, lang.T(a.lang, "adm_missing"))
		} else {
			a.answer(cq.ID, lang.T(a.lang, "adm_item_toggled"))
		}
		a.showItems(chatID, msgID)
	case "adm:del":
		if !a.shop.DeleteItem(cb.Arg) {
			a.answer(cq.ID, lang.T(a.lang, "adm_missing"))
		} else {
			a.log.Info("item deleted", zap.String("item_id", cb.Arg), zap.Int64("admin_id", userID))
			a.answer(cq.ID, lang.T(a.lang, "adm_item_deleted"))
		}
		a.showItems(chatID, msgID)
	case services.CbAdmCities:
		a.answer(cq.ID, "")
		a.showCities(chatID, msgID)
	case services.CbAdmCityAdd:
		a.answer(cq.ID, "")
		a.setFlow(userID, &adminFlow{Step: stepCity})
		a.send(chatID, lang.T(a.lang, "adm_ask_city"))
	case "adm:city_del":
		name, ok := cb.cityTarget(a.shop.Cities())
		if !ok {
			a.answer(cq.ID, lang.T(a.lang, "adm_city_stale"))
			a.showCities(chatID, msgID)
			return
		}
		n := a.shop.DeleteCity(name)
		a.log.Info("city deleted", zap.String("city", name), zap.Int("removed", n), zap.Int64("admin_id", userID))
		a.answer(cq.ID, lang.T(a.lang, "adm_city_deleted", n))
		a.showCities(chatID, msgID)
	case services.CbAdmSettings:
		a.answer(cq.ID, "")
		a.showSettings(chatID, msgID, userID)
	case "adm:set":
		f, ok := cb.field()
		a.answer(cq.ID, "")
		if !ok {
			return
		}
		a.setFlow(userID, &adminFlow{Step: stepField, Field: f})
		a.send(chatID, lang.T(a.lang, "adm_ask_field", services.SettingsFieldLabel(a.lang, f)))
	case services.CbAdmSave:
		saved := a.shop.SaveDraft(userID)
		a.log.Info("settings saved", zap.String("title", saved.Title), zap.Int64("admin_id", userID))
		a.answer(cq.ID, lang.T(a.lang, "adm_settings_saved"))
		a.showSettings(chatID, msgID, userID)
	case services.CbAdmReset:
		a.shop.DiscardDraft(userID)
		a.answer(cq.ID, lang.T(a.lang, "adm_draft_reset"))
		a.showSettings(chatID, msgID, userID)
	default:
		a.answer(cq.ID, "")
	}
}

// handleChoice applies a category or isNew button press to the open item flow.
func (a *AdminBot) handleChoice(chatID, userID int64, cb callback) {
	a.stateMu.Lock()
	f := a.state[userID]
	key := ""
	if f != nil {
		switch cb.Action {
		case "adm:cat":
			if cat, ok := cb.category(); ok {
				key, _ = f.chooseCategory(cat)
			}
		case "adm:isnew":
			key, _ = f.chooseIsNew(cb.Arg == "yes")
		}
	}
	a.stateMu.Unlock()
	if f == nil {
		a.showPanel(chatID, 0)
		return
	}
	a.prompt(chatID, key)
}
