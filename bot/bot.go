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

// Bot is the customer-facing storefront (TOKEN).
type Bot struct {
	api         *tgbotapi.BotAPI
	shop        *services.Shop
	log         *zap.Logger
	defaultLang string

	userLang   map[int64]string
	userLangMu sync.RWMutex

	// last list screen per user ("cat:tea", "new", "sale"), re-rendered after add:<id>
	screen   map[int64]string
	screenMu sync.Mutex
}

func New(cfg *config.Config, shop *services.Shop, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	def := lang.Normalize(cfg.App.DefaultLang)
	return &Bot{
		api:         api,
		shop:        shop,
		log:         logger.Named("storefront"),
		defaultLang: def,
		userLang:    make(map[int64]string),
		screen:      make(map[int64]string),
	}, nil
}

// cardMarkup converts Card.Buttons to a Telegram inline keyboard (URL vs callback).
func cardMarkup(c services.Card) *tgbotapi.InlineKeyboardMarkup {
	if len(c.Buttons) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range c.Buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			if btn.URL != "" {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL))
			} else {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
			}
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// showCard edits messageID in place when set, otherwise sends a new message.
// If the message to edit is gone, a new one is sent; "not modified" is ignored.
func showCard(api *tgbotapi.BotAPI, log *zap.Logger, chatID int64, messageID int, c services.Card) {
	if messageID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, messageID, c.Text)
		if kb := cardMarkup(c); kb != nil {
			edit.ReplyMarkup = kb
		} else {
			emptyKb := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
			edit.ReplyMarkup = &emptyKb
		}
		_, err := api.Send(edit)
		if err == nil {
			return
		}
		errStr := err.Error()
		if strings.Contains(errStr, "not modified") {
			return
		}
		if !strings.Contains(errStr, "not found") {
			log.Warn("edit card", zap.Int64("chat_id", chatID), zap.Int("message_id", messageID), zap.Error(err))
			return
		}
	}
	msg := tgbotapi.NewMessage(chatID, c.Text)
	if kb := cardMarkup(c); kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := api.Send(msg); err != nil {
		log.Warn("send card", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Главная"},
			{Command: "menu", Description: "Меню"},
			{Command: "cart", Description: "Корзина"},
			{Command: "cities", Description: "Наши города"},
			{Command: "contacts", Description: "Контакты"},
			{Command: "language", Description: "Язык / Language"},
			{Command: "reset", Description: "Очистить корзину"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

func (b *Bot) Start() {
	if err := b.setBotCommands(); err != nil {
		b.log.Warn("set commands", zap.Error(err))
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.log.Info("storefront bot started", zap.String("username", b.api.Self.UserName))
	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		msg := update.Message
		userID := msg.From.ID
		b.rememberLang(userID, msg.From.LanguageCode)
		b.handleCommand(msg.Chat.ID, userID, strings.TrimSpace(msg.Text))
	}
}

// Stop ends the update loop started by Start.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleCommand(chatID, userID int64, text string) {
	// "/menu@LemurrBot" in group chats
	if i := strings.IndexByte(text, '@'); i > 0 && strings.HasPrefix(text, "/") {
		text = text[:i]
	}
	switch text {
	case "/menu":
		b.show(chatID, 0, userID, services.CbMenu)
	case "/cart":
		b.show(chatID, 0, userID, services.CbCart)
	case "/cities":
		b.show(chatID, 0, userID, services.CbCity)
	case "/contacts":
		b.show(chatID, 0, userID, services.CbInfo)
	case "/language":
		showCard(b.api, b.log, chatID, 0, services.BuildLanguageCard(b.getLang(userID)))
	case "/reset":
		b.shop.EndSession(userID)
		b.send(chatID, lang.T(b.getLang(userID), "reset_done"))
		b.show(chatID, 0, userID, services.CbHome)
	default:
		// /start and anything else land on the home screen
		b.show(chatID, 0, userID, services.CbHome)
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) getLang(userID int64) string {
	b.userLangMu.RLock()
	l, ok := b.userLang[userID]
	b.userLangMu.RUnlock()
	if ok {
		return l
	}
	return b.defaultLang
}

func (b *Bot) setLang(userID int64, langCode string) {
	if !lang.Supported(langCode) {
		return
	}
	b.userLangMu.Lock()
	defer b.userLangMu.Unlock()
	b.userLang[userID] = langCode
}

// rememberLang seeds the user's language from the Telegram client on first contact.
func (b *Bot) rememberLang(userID int64, clientCode string) {
	b.userLangMu.Lock()
	defer b.userLangMu.Unlock()
	if _, ok := b.userLang[userID]; ok || clientCode == "" {
		return
	}
	b.userLang[userID] = lang.Normalize(clientCode)
}

func (b *Bot) setScreen(userID int64, screen string) {
	b.screenMu.Lock()
	b.screen[userID] = screen
	b.screenMu.Unlock()
}

func (b *Bot) lastScreen(userID int64) string {
	b.screenMu.Lock()
	defer b.screenMu.Unlock()
	if s, ok := b.screen[userID]; ok {
		return s
	}
	return services.CbMenu
}

// card builds the storefront screen named by screen callback data.
func (b *Bot) card(userID int64, screen string) services.Card {
	l := b.getLang(userID)
	if screen == services.CbCart {
		return services.BuildCartCard(b.shop.Cart(userID), l)
	}
	count := b.shop.CartCount(userID)
	switch {
	case screen == services.CbMenu:
		return services.BuildMenuCard(count, l)
	case screen == services.CbNew:
		return services.BuildItemsCard(lang.T(l, "new_header"), b.shop.NewItems(), count, l)
	case screen == services.CbSale:
		return services.BuildItemsCard(lang.T(l, "sale_header"), b.shop.DiscountItems(), count, l)
	case screen == services.CbCity:
		return services.BuildCitiesCard(b.shop.Cities(), count, l)
	case screen == services.CbInfo:
		return services.BuildContactsCard(b.shop.Settings(), count, l)
	case strings.HasPrefix(screen, "cat:"):
		cat := models.Category(strings.TrimPrefix(screen, "cat:"))
		if cat.Valid() {
			return services.BuildCategoryCard(cat, b.shop.ItemsByCategory(cat), count, l)
		}
	}
	return services.BuildHomeCard(b.shop.Settings(), count, l)
}

func (b *Bot) show(chatID int64, messageID int, userID int64, screen string) {
	switch {
	case screen == services.CbNew, screen == services.CbSale, strings.HasPrefix(screen, "cat:"):
		b.setScreen(userID, screen)
	}
	showCard(b.api, b.log, chatID, messageID, b.card(userID, screen))
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.log.Debug("answer callback", zap.Error(err))
	}
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		b.answer(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	msgID := cq.Message.MessageID
	userID := cq.From.ID
	b.rememberLang(userID, cq.From.LanguageCode)

	cb, ok := parseCallback(cq.Data)
	if !ok {
		b.log.Debug("unknown callback", zap.String("data", cq.Data), zap.Int64("user_id", userID))
		b.answer(cq.ID, "")
		return
	}

	switch cb.Action {
	case "add":
		if !b.shop.AddToCart(userID, cb.Arg) {
			b.answer(cq.ID, lang.T(b.getLang(userID), "unavailable"))
			b.show(chatID, msgID, userID, b.lastScreen(userID))
			return
		}
		b.answer(cq.ID, lang.T(b.getLang(userID), "added"))
		b.show(chatID, msgID, userID, b.lastScreen(userID))
	case "inc", "dec":
		delta := 1
		if cb.Action == "dec" {
			delta = -1
		}
		b.shop.ChangeQuantity(userID, cb.Arg, delta)
		b.answer(cq.ID, "")
		b.show(chatID, msgID, userID, services.CbCart)
	case "rm":
		b.shop.RemoveFromCart(userID, cb.Arg)
		b.answer(cq.ID, "")
		b.show(chatID, msgID, userID, services.CbCart)
	case services.CbOrder:
		// Checkout is not implemented: acknowledge and keep the cart.
		l := b.getLang(userID)
		b.answer(cq.ID, "")
		if b.shop.Cart(userID).Empty() {
			b.show(chatID, msgID, userID, services.CbCart)
			return
		}
		b.send(chatID, lang.T(l, "order_stub"))
	case "lang":
		b.setLang(userID, cb.Arg)
		l := b.getLang(userID)
		b.answer(cq.ID, lang.T(l, "lang_changed"))
		b.show(chatID, msgID, userID, services.CbHome)
	case "cat":
		b.answer(cq.ID, "")
		b.show(chatID, msgID, userID, cq.Data)
	case services.CbHome, services.CbMenu, services.CbNew, services.CbSale,
		services.CbCart, services.CbCity, services.CbInfo:
		b.answer(cq.ID, "")
		b.show(chatID, msgID, userID, cb.Action)
	default:
		// admin callbacks are not served here
		b.answer(cq.ID, "")
	}
}
