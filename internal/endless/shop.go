package endless

import "screenguess/internal/models"

const (
	shopStreakStep = 5
	shopDiscounts  = 2
	discountAmount = 1
	allInBonus     = 15
)

var shopItems = []models.ShopItem{
	{ID: "skip", Name: "Skip", Description: "Refill one Skip lifeline", Cost: 5, Refills: models.LifelineSkip},
	{ID: "consultant", Name: "Consultant", Description: "Refill one Consultant lifeline", Cost: 4, Refills: models.LifelineConsultant},
	{ID: "double_trouble", Name: "Double Trouble", Description: "Refill one Double Trouble lifeline", Cost: 3, Refills: models.LifelineDoubleTrouble},
	{ID: "anagram", Name: "Anagram", Description: "Refill one Anagram lifeline", Cost: 3, Refills: models.LifelineAnagram},
	{ID: "synopsis", Name: "Synopsis", Description: "Refill one Synopsis lifeline", Cost: 2, Refills: models.LifelineSynopsis},
	{ID: models.ShopItemAllIn, Name: "All In", Description: "Take 15 points now and give up every other purchase for the rest of the run", BonusPoints: allInBonus},
}

// ShopItems returns the static shop catalog
func ShopItems() []models.ShopItem {
	return append([]models.ShopItem(nil), shopItems...)
}

func findShopItem(id string) (models.ShopItem, bool) {
	for _, item := range shopItems {
		if item.ID == id {
			return item, true
		}
	}
	return models.ShopItem{}, false
}

// ShopResult is the shop as seen after an open or a purchase
type ShopResult struct {
	Accepted bool               `json:"accepted"`
	Open     bool               `json:"open"`
	Score    int                `json:"score"`
	Offers   []models.ShopOffer `json:"offers"`
}

// ShopAvailable reports whether the shop may be opened for the current round
func (c *Controller) ShopAvailable() bool {
	s := c.state
	return s.Streak > 0 &&
		s.Streak%shopStreakStep == 0 &&
		s.LastShopStreak != s.Streak &&
		!s.IsGameOver &&
		s.BonusRound == nil &&
		s.Round.IsPlaying() &&
		len(s.Round.Guesses) == 0
}

// OpenShop starts a visit for the current streak boundary and picks its discounts
func (c *Controller) OpenShop() (ShopResult, error) {
	s := c.state
	if s.Shop != nil && s.Shop.Streak == s.Streak {
		return c.shopResult(true), nil
	}
	if !c.ShopAvailable() {
		return c.shopResult(false), nil
	}

	var refills []string
	for _, item := range shopItems {
		if !item.IsExclusive() {
			refills = append(refills, item.ID)
		}
	}
	c.rng.Shuffle(len(refills), func(i, j int) {
		refills[i], refills[j] = refills[j], refills[i]
	})
	if len(refills) > shopDiscounts {
		refills = refills[:shopDiscounts]
	}

	s.Shop = &models.ShopVisit{
		Streak:     s.Streak,
		Discounted: refills,
		Purchased:  []string{},
	}
	return c.shopResult(true), c.persist()
}

// BuyShopItem buys one item from the open visit. Unaffordable, unknown or
// locked-out items are silently refused.
func (c *Controller) BuyShopItem(itemID string) (ShopResult, error) {
	s := c.state
	if s.Shop == nil {
		return c.shopResult(false), nil
	}

	item, ok := findShopItem(itemID)
	if !ok {
		return c.shopResult(false), nil
	}

	offer := c.offer(item)
	if !offer.Available {
		return c.shopResult(false), nil
	}

	s.Score -= offer.FinalCost
	if item.Refills != "" {
		s.Lifelines[item.Refills]++
	}
	if item.IsExclusive() {
		s.AllInPurchased = true
	}
	s.Score += item.BonusPoints
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	s.Shop.Purchased = append(s.Shop.Purchased, item.ID)

	return c.shopResult(true), c.persist()
}

// CloseShop ends the visit; the shop will not reopen until the next boundary
func (c *Controller) CloseShop() error {
	if c.state.Shop == nil && !c.ShopAvailable() {
		return nil
	}
	c.dismissShop()
	return c.persist()
}

// dismissShop closes any open visit and marks the current boundary as used
func (c *Controller) dismissShop() {
	s := c.state
	if s.Shop == nil && !c.ShopAvailable() {
		return
	}
	s.LastShopStreak = s.Streak
	s.Shop = nil
}

// ShopOffers prices every item for the open visit
func (c *Controller) ShopOffers() []models.ShopOffer {
	offers := make([]models.ShopOffer, 0, len(shopItems))
	for _, item := range shopItems {
		offers = append(offers, c.offer(item))
	}
	return offers
}

func (c *Controller) offer(item models.ShopItem) models.ShopOffer {
	s := c.state
	o := models.ShopOffer{ShopItem: item, FinalCost: item.Cost}

	if s.Shop == nil {
		return o
	}
	if s.Shop.IsDiscounted(item.ID) {
		o.Discounted = true
		o.FinalCost = max(0, item.Cost-discountAmount)
	}

	switch {
	case item.IsExclusive():
		o.Available = len(s.Shop.Purchased) == 0 && !s.AllInPurchased
	default:
		o.Available = !s.AllInPurchased
	}
	if s.Score < o.FinalCost {
		o.Available = false
	}
	return o
}

func (c *Controller) shopResult(accepted bool) ShopResult {
	return ShopResult{
		Accepted: accepted,
		Open:     c.state.Shop != nil,
		Score:    c.state.Score,
		Offers:   c.ShopOffers(),
	}
}
