package codec

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/waste3d/survivors-profile/internal/domain"
)

// ProfileDocument - формат хранения. Только примитивы и пары списков вместо map:
// хранилище платформы не умеет в произвольные словари.
type ProfileDocument struct {
	SchemaVersion          int      `json:"schemaVersion"`
	GoldBalance            int      `json:"goldBalance"`
	UnlockedCharacters     []string `json:"unlockedCharacters"`
	SelectedCharacter      string   `json:"selectedCharacter"`
	StatLevelKeys          []string `json:"statLevelKeys"`
	StatLevelValues        []int    `json:"statLevelValues"`
	LongestSurvivalSeconds int      `json:"longestSurvivalSeconds"`
	HighestKillCount       int      `json:"highestKillCount"`
	HighestLevelReached    int      `json:"highestLevelReached"`
	MostGoldInRun          int      `json:"mostGoldInRun"`
	AdWatchPackIDs         []string `json:"adWatchPackIds"`
	AdWatchCounts          []int    `json:"adWatchCounts"`
	LastAdWatchedAt        string   `json:"lastAdWatchedAt"`
	AdsRemoved             bool     `json:"adsRemoved"`
}

// Repair - что пришлось починить при чтении. Данные при этом читаются.
type Repair struct {
	Field  string
	Reason string
}

func (r Repair) String() string {
	return r.Field + ": " + r.Reason
}

// Decoded - результат чтения блоба.
type Decoded struct {
	Record  domain.ProfileRecord
	Repairs []Repair
}

func Encode(p domain.ProfileRecord) ([]byte, error) {
	data, err := json.Marshal(toDocument(p))
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

// Decode разбирает блоб. Нечитаемый JSON - domain.ErrCorruptData.
// Несовпадение длин в парах списков не фатально: хвост отрезается, причина пишется в Repairs.
func Decode(data []byte) (Decoded, error) {
	var doc ProfileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Decoded{}, fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
	}
	return toDomain(doc), nil
}

func toDocument(p domain.ProfileRecord) ProfileDocument {
	stats := FromMap(p.StatLevels)
	ads := FromMap(p.AdWatchCounters)
	return ProfileDocument{
		SchemaVersion:          p.SchemaVersion,
		GoldBalance:            p.GoldBalance,
		UnlockedCharacters:     p.UnlockedList(),
		SelectedCharacter:      p.SelectedCharacter,
		StatLevelKeys:          stats.Keys,
		StatLevelValues:        stats.Values,
		LongestSurvivalSeconds: p.HighScores.LongestSurvivalSeconds,
		HighestKillCount:       p.HighScores.HighestKillCount,
		HighestLevelReached:    p.HighScores.HighestLevelReached,
		MostGoldInRun:          p.HighScores.MostGoldInRun,
		AdWatchPackIDs:         ads.Keys,
		AdWatchCounts:          ads.Values,
		LastAdWatchedAt:        domain.FormatWatchedAt(p.LastAdWatchedAt),
		AdsRemoved:             p.AdsRemoved,
	}
}

// toDomain при рассинхроне пар обрезает их по короткой стороне: совпавшие
// уровни сохраняются, потерявшие пару ключи получают уровень по умолчанию.
func toDomain(doc ProfileDocument) Decoded {
	var repairs []Repair

	stats, n := PairList{Keys: doc.StatLevelKeys, Values: doc.StatLevelValues}.Map()
	if n > 0 {
		repairs = append(repairs, Repair{
			Field:  "statLevels",
			Reason: fmt.Sprintf("%d keys vs %d values, truncated", len(doc.StatLevelKeys), len(doc.StatLevelValues)),
		})
	}
	ads, n := PairList{Keys: doc.AdWatchPackIDs, Values: doc.AdWatchCounts}.Map()
	if n > 0 {
		repairs = append(repairs, Repair{
			Field:  "adWatchCounters",
			Reason: fmt.Sprintf("%d ids vs %d counts, truncated", len(doc.AdWatchPackIDs), len(doc.AdWatchCounts)),
		})
	}

	watchedAt, ok := domain.ParseWatchedAt(doc.LastAdWatchedAt)
	if !ok && doc.LastAdWatchedAt != "" {
		repairs = append(repairs, Repair{Field: "lastAdWatchedAt", Reason: fmt.Sprintf("unparsable %q, dropped", doc.LastAdWatchedAt)})
	}

	unlocked := make(map[string]struct{}, len(doc.UnlockedCharacters))
	for _, id := range doc.UnlockedCharacters {
		unlocked[id] = struct{}{}
	}

	return Decoded{
		Record: domain.ProfileRecord{
			SchemaVersion:      doc.SchemaVersion,
			GoldBalance:        doc.GoldBalance,
			UnlockedCharacters: unlocked,
			SelectedCharacter:  doc.SelectedCharacter,
			StatLevels:         stats,
			HighScores: domain.HighScores{
				LongestSurvivalSeconds: doc.LongestSurvivalSeconds,
				HighestKillCount:       doc.HighestKillCount,
				HighestLevelReached:    doc.HighestLevelReached,
				MostGoldInRun:          doc.MostGoldInRun,
			},
			AdWatchCounters: ads,
			LastAdWatchedAt: watchedAt,
			AdsRemoved:      doc.AdsRemoved,
		},
		Repairs: repairs,
	}
}

// PairList - словарь в виде двух списков одинаковой длины: Keys[i] соответствует Values[i].
type PairList struct {
	Keys   []string
	Values []int
}

// FromMap строит пару списков с ключами по алфавиту, чтобы кодирование было детерминированным.
func FromMap(m map[string]int) PairList {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]int, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	return PairList{Keys: keys, Values: values}
}

// Map собирает словарь обратно. Второе значение - сколько элементов отброшено из-за разной длины.
func (l PairList) Map() (map[string]int, int) {
	n := len(l.Keys)
	if len(l.Values) < n {
		n = len(l.Values)
	}
	dropped := len(l.Keys) + len(l.Values) - 2*n

	m := make(map[string]int, n)
	for i := 0; i < n; i++ {
		m[l.Keys[i]] = l.Values[i]
	}
	return m, dropped
}
