package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemurr-coffee/models"
)

func TestShopCartsArePerSession(t *testing.T) {
	s := NewShop(DefaultSeed())
	const alice, bob int64 = 1, 2

	require.True(t, s.AddToCart(alice, "4"))
	require.True(t, s.AddToCart(alice, "4"))
	require.True(t, s.AddToCart(bob, "1"))
	assert.False(t, s.AddToCart(bob, "missing"))

	a := s.Cart(alice)
	assert.Equal(t, 2, a.Count)
	assert.Equal(t, int64(544), a.DisplayTotal)
	assert.Equal(t, int64(180), s.Cart(bob).DisplayTotal)
	assert.True(t, s.Cart(99).Empty())
}

func TestShopChangeQuantity(t *testing.T) {
	s := NewShop(DefaultSeed())
	const u int64 = 7
	s.AddToCart(u, "1")

	s.ChangeQuantity(u, "1", +1)
	assert.Equal(t, 2, s.Cart(u).Count)
	s.ChangeQuantity(u, "1", -1)
	s.ChangeQuantity(u, "1", -1)
	assert.True(t, s.Cart(u).Empty())

	// +/- on an id that is not in the cart does nothing.
	s.ChangeQuantity(u, "2", +1)
	assert.True(t, s.Cart(u).Empty())

	s.AddToCart(u, "2")
	s.SetQuantity(u, "2", 5)
	assert.Equal(t, 5, s.Cart(u).Count)
	s.RemoveFromCart(u, "2")
	assert.True(t, s.Cart(u).Empty())
}

func TestShopDeleteItemDropsCartLines(t *testing.T) {
	s := NewShop(DefaultSeed())
	s.AddToCart(1, "1")
	s.AddToCart(1, "2")
	s.AddToCart(2, "1")

	require.True(t, s.DeleteItem("1"))
	assert.Equal(t, 1, s.Cart(1).Count)
	assert.True(t, s.Cart(2).Empty())

	// Re-creating an item never revives the old id in a cart.
	it, ok := s.CreateItem(models.ItemDraft{Name: "Эспрессо", Price: models.Int64(180)})
	require.True(t, ok)
	assert.NotEqual(t, "1", it.ID)
}

func TestShopPriceEditReachesCarts(t *testing.T) {
	s := NewShop(DefaultSeed())
	s.AddToCart(1, "1")
	require.True(t, s.UpdateItem("1", models.ItemPatch{Price: models.Int64(200)}))
	assert.Equal(t, int64(200), s.Cart(1).DisplayTotal)
}

func TestShopEndSession(t *testing.T) {
	s := NewShop(DefaultSeed())
	s.AddToCart(1, "1")
	s.EndSession(1)
	assert.True(t, s.Cart(1).Empty())
}

func TestShopSettingsDraft(t *testing.T) {
	s := NewShop(DefaultSeed())
	const admin int64 = 42
	published := s.Settings()

	require.True(t, s.EditDraft(admin, models.FieldHeroTitle, "Новый заголовок"))
	draft, changed := s.Draft(admin)
	assert.Equal(t, "Новый заголовок", draft.HeroTitle)
	assert.Equal(t, []models.SettingsField{models.FieldHeroTitle}, changed)
	assert.Equal(t, published, s.Settings(), "storefront keeps the published copy")

	saved := s.SaveDraft(admin)
	assert.Equal(t, "Новый заголовок", saved.HeroTitle)
	assert.Equal(t, saved, s.Settings())
	_, changed = s.Draft(admin)
	assert.Empty(t, changed)

	s.EditDraft(admin, models.FieldPhone, "+7 999")
	s.DiscardDraft(admin)
	draft, changed = s.Draft(admin)
	assert.Equal(t, saved, draft)
	assert.Empty(t, changed)
}

func TestShopDraftsKeepOtherAdminsSaves(t *testing.T) {
	s := NewShop(DefaultSeed())
	const adminA, adminB int64 = 1, 2

	// B opens the settings screen first and keeps the draft around.
	_, changed := s.Draft(adminB)
	require.Empty(t, changed)

	require.True(t, s.EditDraft(adminA, models.FieldPhone, "+7 111"))
	s.SaveDraft(adminA)

	draftB, changed := s.Draft(adminB)
	assert.Equal(t, "+7 111", draftB.Phone, "open drafts follow published saves")
	assert.Empty(t, changed)

	require.True(t, s.EditDraft(adminB, models.FieldHeroTitle, "Новый заголовок"))
	saved := s.SaveDraft(adminB)
	assert.Equal(t, "+7 111", saved.Phone)
	assert.Equal(t, "Новый заголовок", saved.HeroTitle)
	assert.Equal(t, saved, s.Settings())
}

func TestShopDraftsOverlapOnSameField(t *testing.T) {
	s := NewShop(DefaultSeed())
	s.EditDraft(1, models.FieldEmail, "a@lemurr.ru")
	s.EditDraft(2, models.FieldEmail, "b@lemurr.ru")
	s.EditDraft(2, models.FieldAddress, "Казань")

	s.SaveDraft(1)
	s.SaveDraft(2)
	got := s.Settings()
	assert.Equal(t, "b@lemurr.ru", got.Email, "last save wins on a field both admins edited")
	assert.Equal(t, "Казань", got.Address)
}

func TestShopCartCount(t *testing.T) {
	s := NewShop(DefaultSeed())
	assert.Zero(t, s.CartCount(5))
	s.AddToCart(5, "1")
	s.SetQuantity(5, "1", 3)
	s.AddToCart(5, "2")
	assert.Equal(t, 4, s.CartCount(5))
	assert.Equal(t, s.Cart(5).Count, s.CartCount(5))

	s.DeleteItem("1")
	assert.Equal(t, 1, s.CartCount(5))
}

func TestShopConcurrentAccess(t *testing.T) {
	s := NewShop(DefaultSeed())
	var wg sync.WaitGroup
	for u := int64(0); u < 8; u++ {
		wg.Add(1)
		go func(u int64) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.AddToCart(u, "1")
				_ = s.Cart(u)
				s.AddCity("Казань")
			}
		}(u)
	}
	wg.Wait()
	for u := int64(0); u < 8; u++ {
		assert.Equal(t, 50, s.Cart(u).Count)
	}
	assert.Len(t, s.Cities(), 4+8*50)
}
