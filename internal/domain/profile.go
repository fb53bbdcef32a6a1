package domain

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

type HighScores struct {
	LongestSurvivalSeconds int
	HighestKillCount       int
	HighestLevelReached    int
	MostGoldInRun          int
}

// ProfileRecord - сохраняемое состояние игрока.
// Менять его снаружи можно только через ProfileStore.
type ProfileRecord struct {
	SchemaVersion      int
	GoldBalance        int
	UnlockedCharacters map[string]struct{}
	SelectedCharacter  string
	StatLevels         map[string]int
	HighScores         HighScores
	AdWatchCounters    map[string]int
	LastAdWatchedAt    time.Time // zero = ещё не смотрел
	AdsRemoved         bool
}

// CreateDefault - профиль первого запуска.
func CreateDefault() ProfileRecord {
	p := ProfileRecord{
		SchemaVersion:      CurrentSchemaVersion,
		UnlockedCharacters: make(map[string]struct{}, len(StarterCharacters)),
		SelectedCharacter:  PrimaryStarter,
		StatLevels:         make(map[string]int),
		AdWatchCounters:    make(map[string]int),
	}
	for _, id := range StarterCharacters {
		p.UnlockedCharacters[id] = struct{}{}
	}
	return p
}

// NormalizeCharacterID приводит ID к каноничному виду (case folding).
func NormalizeCharacterID(id string) string {
	return cases.Fold().String(strings.TrimSpace(id))
}

func (p *ProfileRecord) GetStatLevel(key string) int {
	return p.StatLevels[strings.TrimSpace(key)]
}

// SetStatLevel записывает уровень. Уровни не понижаются: меньшее значение игнорируется.
func (p *ProfileRecord) SetStatLevel(key string, value int) bool {
	key = strings.TrimSpace(key)
	if key == "" || value < 0 {
		return false
	}
	if p.StatLevels == nil {
		p.StatLevels = make(map[string]int)
	}
	if cur, ok := p.StatLevels[key]; ok && value <= cur {
		return false
	}
	p.StatLevels[key] = value
	return true
}

// UpdateHighScores заменяет рекорд только если новое значение строго больше.
func (p *ProfileRecord) UpdateHighScores(survivalSeconds, kills, level, goldInRun int) bool {
	changed := false
	raise := func(field *int, candidate int) {
		if candidate > *field {
			*field = candidate
			changed = true
		}
	}
	raise(&p.HighScores.LongestSurvivalSeconds, survivalSeconds)
	raise(&p.HighScores.HighestKillCount, kills)
	raise(&p.HighScores.HighestLevelReached, level)
	raise(&p.HighScores.MostGoldInRun, goldInRun)
	return changed
}

func (p *ProfileRecord) IsCharacterUnlocked(id string) bool {
	_, ok := p.UnlockedCharacters[NormalizeCharacterID(id)]
	return ok
}

// UnlockCharacter идемпотентен. Возвращает true, если персонаж открыт впервые.
func (p *ProfileRecord) UnlockCharacter(id string) bool {
	id = NormalizeCharacterID(id)
	if id == "" {
		return false
	}
	if p.UnlockedCharacters == nil {
		p.UnlockedCharacters = make(map[string]struct{})
	}
	if _, ok := p.UnlockedCharacters[id]; ok {
		return false
	}
	p.UnlockedCharacters[id] = struct{}{}
	return true
}

func (p *ProfileRecord) SelectCharacter(id string) error {
	if !p.IsCharacterUnlocked(id) {
		return ErrInvalidSelection
	}
	p.SelectedCharacter = NormalizeCharacterID(id)
	return nil
}

// AddGold отклоняет начисление, которое переполнило бы баланс.
func (p *ProfileRecord) AddGold(amount int) error {
	if amount < 0 || amount > math.MaxInt-p.GoldBalance {
		return ErrInvalidAmount
	}
	p.GoldBalance += amount
	return nil
}

// SpendGold ничего не меняет, если денег не хватает.
func (p *ProfileRecord) SpendGold(amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount > p.GoldBalance {
		return ErrInsufficientFunds
	}
	p.GoldBalance -= amount
	return nil
}

// RecordAdWatched увеличивает счётчик пака. Время просмотра двигается только вперёд.
func (p *ProfileRecord) RecordAdWatched(packID string, at time.Time) {
	if p.AdWatchCounters == nil {
		p.AdWatchCounters = make(map[string]int)
	}
	p.AdWatchCounters[packID]++
	at = at.UTC()
	if at.After(p.LastAdWatchedAt) {
		p.LastAdWatchedAt = at
	}
}

// UnlockedList - открытые персонажи в отсортированном виде.
func (p *ProfileRecord) UnlockedList() []string {
	ids := make([]string, 0, len(p.UnlockedCharacters))
	for id := range p.UnlockedCharacters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone возвращает глубокую копию, которую можно отдавать наружу.
func (p ProfileRecord) Clone() ProfileRecord {
	c := p
	c.UnlockedCharacters = make(map[string]struct{}, len(p.UnlockedCharacters))
	for id := range p.UnlockedCharacters {
		c.UnlockedCharacters[id] = struct{}{}
	}
	c.StatLevels = make(map[string]int, len(p.StatLevels))
	for k, v := range p.StatLevels {
		c.StatLevels[k] = v
	}
	c.AdWatchCounters = make(map[string]int, len(p.AdWatchCounters))
	for k, v := range p.AdWatchCounters {
		c.AdWatchCounters[k] = v
	}
	return c
}

// Equal сравнивает профили по значению. Пустая и nil map считаются равными.
func (p ProfileRecord) Equal(o ProfileRecord) bool {
	if p.SchemaVersion != o.SchemaVersion ||
		p.GoldBalance != o.GoldBalance ||
		p.SelectedCharacter != o.SelectedCharacter ||
		p.HighScores != o.HighScores ||
		p.AdsRemoved != o.AdsRemoved ||
		!p.LastAdWatchedAt.Equal(o.LastAdWatchedAt) {
		return false
	}
	if len(p.UnlockedCharacters) != len(o.UnlockedCharacters) {
		return false
	}
	for id := range p.UnlockedCharacters {
		if _, ok := o.UnlockedCharacters[id]; !ok {
			return false
		}
	}
	return intMapsEqual(p.StatLevels, o.StatLevels) && intMapsEqual(p.AdWatchCounters, o.AdWatchCounters)
}

func intMapsEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
