package domain

// CurrentSchemaVersion - версия формата профиля, которую пишет текущая сборка.
const CurrentSchemaVersion = 3

// PrimaryStarter выбирается, если выбранный персонаж оказался не открыт.
const PrimaryStarter = "wanderer"

// StarterCharacters всегда открыты, независимо от покупок.
var StarterCharacters = []string{PrimaryStarter, "ranger"}

// ProductRemoveAds - покупка, отключающая межстраничную рекламу.
const ProductRemoveAds = "remove_ads"

type AdPack struct {
	ID         string
	GoldReward int
}

// Наградные паки за просмотр рекламы
var AdPacks = []AdPack{
	{ID: "gold_small", GoldReward: 50},
	{ID: "gold_medium", GoldReward: 150},
	{ID: "gold_large", GoldReward: 400},
}

// StatKeys - прокачиваемые характеристики.
var StatKeys = []string{"might", "vitality", "haste", "armor", "magnet", "greed"}

func AdPackByID(id string) (AdPack, bool) {
	for _, p := range AdPacks {
		if p.ID == id {
			return p, true
		}
	}
	return AdPack{}, false
}

func IsKnownStat(key string) bool {
	for _, k := range StatKeys {
		if k == key {
			return true
		}
	}
	return false
}
