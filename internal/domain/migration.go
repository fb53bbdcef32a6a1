package domain

import "strings"

// Шаг миграции переводит профиль ровно на одну версию вверх.
type migrationStep func(p *ProfileRecord)

// migrations[v] переводит профиль из версии v в v+1.
var migrations = map[int]migrationStep{
	// v2: появились уровни характеристик, ID персонажей приводятся к одному регистру
	1: func(p *ProfileRecord) {
		if p.StatLevels == nil {
			p.StatLevels = make(map[string]int)
		}
		p.UnlockedCharacters = foldCharacterSet(p.UnlockedCharacters)
		p.SelectedCharacter = NormalizeCharacterID(p.SelectedCharacter)
	},
	// v3: счётчики рекламы и флаг отключения рекламы
	2: func(p *ProfileRecord) {
		if p.AdWatchCounters == nil {
			p.AdWatchCounters = make(map[string]int)
		}
	},
}

// Validate приводит профиль к текущей версии и чинит нарушенные инварианты.
// Функция чистая: вход не меняется. Повторный вызов на своём же результате ничего не меняет.
func Validate(record ProfileRecord) ProfileRecord {
	p := record.Clone()

	// 0 - поле версии отсутствовало, это самый первый формат
	if p.SchemaVersion < 1 {
		p.SchemaVersion = 1
	}
	for p.SchemaVersion < CurrentSchemaVersion {
		if step, ok := migrations[p.SchemaVersion]; ok {
			step(&p)
		}
		p.SchemaVersion++
	}

	repairValues(&p)

	for _, id := range StarterCharacters {
		p.UnlockedCharacters[id] = struct{}{}
	}
	p.SelectedCharacter = NormalizeCharacterID(p.SelectedCharacter)
	if _, ok := p.UnlockedCharacters[p.SelectedCharacter]; !ok {
		p.SelectedCharacter = PrimaryStarter
	}
	return p
}

func repairValues(p *ProfileRecord) {
	p.UnlockedCharacters = foldCharacterSet(p.UnlockedCharacters)

	if p.GoldBalance < 0 {
		p.GoldBalance = 0
	}

	levels := make(map[string]int, len(p.StatLevels))
	for k, v := range p.StatLevels {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if v < 0 {
			v = 0
		}
		if cur, ok := levels[k]; !ok || v > cur {
			levels[k] = v
		}
	}
	p.StatLevels = levels

	hs := &p.HighScores
	for _, f := range []*int{&hs.LongestSurvivalSeconds, &hs.HighestKillCount, &hs.HighestLevelReached, &hs.MostGoldInRun} {
		if *f < 0 {
			*f = 0
		}
	}

	counters := make(map[string]int, len(p.AdWatchCounters))
	for k, v := range p.AdWatchCounters {
		if k == "" {
			continue
		}
		if v < 0 {
			v = 0
		}
		counters[k] = v
	}
	p.AdWatchCounters = counters

	if !p.LastAdWatchedAt.IsZero() {
		p.LastAdWatchedAt = p.LastAdWatchedAt.UTC()
	}
}

func foldCharacterSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for id := range in {
		id = NormalizeCharacterID(id)
		if id == "" {
			continue
		}
		out[id] = struct{}{}
	}
	return out
}
