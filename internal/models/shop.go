package models

// LifelineType names one of the seven lifeline counters
type LifelineType string

const (
	LifelineSkip          LifelineType = "skip"
	LifelineAnagram       LifelineType = "anagram"
	LifelineConsultant    LifelineType = "consultant"
	LifelineDoubleTrouble LifelineType = "double_trouble"
	LifelineZoomOut       LifelineType = "zoom_out"
	LifelineCoverPeek     LifelineType = "cover_peek"
	LifelineSynopsis      LifelineType = "synopsis"
)

// AllLifelines lists every lifeline type in display order
var AllLifelines = []LifelineType{
	LifelineSkip,
	LifelineAnagram,
	LifelineConsultant,
	LifelineDoubleTrouble,
	LifelineZoomOut,
	LifelineCoverPeek,
	LifelineSynopsis,
}

// IsValid reports whether t is a known lifeline type
func (t LifelineType) IsValid() bool {
	for _, l := range AllLifelines {
		if l == t {
			return true
		}
	}
	return false
}

// ShopItemAllIn is the exclusive flat-bonus item
const ShopItemAllIn = "all_in"

// ShopItem is a static shop catalog entry
type ShopItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cost        int          `json:"cost"`
	Refills     LifelineType `json:"refills,omitempty"`
	BonusPoints int          `json:"bonusPoints,omitempty"`
}

// IsExclusive reports whether buying the item locks out every other item
func (i ShopItem) IsExclusive() bool {
	return i.ID == ShopItemAllIn
}

// ShopVisit is the open shop for one streak boundary
type ShopVisit struct {
	Streak     int      `json:"streak"`
	Discounted []string `json:"discounted"`
	Purchased  []string `json:"purchased"`
}

// IsDiscounted reports whether itemID is on sale during this visit
func (v *ShopVisit) IsDiscounted(itemID string) bool {
	for _, id := range v.Discounted {
		if id == itemID {
			return true
		}
	}
	return false
}

// ShopOffer is a shop item priced for the current visit
type ShopOffer struct {
	ShopItem
	FinalCost  int  `json:"finalCost"`
	Discounted bool `json:"discounted"`
	Available  bool `json:"available"`
}
