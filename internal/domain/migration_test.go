package domain

import (
	"testing"
	"time"
)

func TestValidate_MigratesLegacyRecord(t *testing.T) {
	legacy := ProfileRecord{
		SchemaVersion:      1,
		GoldBalance:        75,
		UnlockedCharacters: map[string]struct{}{"Wanderer": {}, "Paladin": {}},
		SelectedCharacter:  "Paladin",
	}

	got := Validate(legacy)

	if got.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", got.SchemaVersion, CurrentSchemaVersion)
	}
	if got.SelectedCharacter != "paladin" {
		t.Errorf("SelectedCharacter = %q, want paladin", got.SelectedCharacter)
	}
	if _, ok := got.UnlockedCharacters["Paladin"]; ok {
		t.Error("unlocked IDs were not case-folded")
	}
	if got.StatLevels == nil || got.AdWatchCounters == nil {
		t.Error("migration left nil maps")
	}
	if got.GoldBalance != 75 {
		t.Errorf("GoldBalance = %d, want 75", got.GoldBalance)
	}
	if legacy.SchemaVersion != 1 {
		t.Error("Validate mutated its input")
	}
}

func TestValidate_RepairsInvariants(t *testing.T) {
	tests := []struct {
		name   string
		record ProfileRecord
	}{
		{"empty", ProfileRecord{}},
		{"missing starters", ProfileRecord{SchemaVersion: CurrentSchemaVersion, UnlockedCharacters: map[string]struct{}{"paladin": {}}, SelectedCharacter: "paladin"}},
		{"locked selection", ProfileRecord{SchemaVersion: CurrentSchemaVersion, SelectedCharacter: "lich"}},
		{"negative values", ProfileRecord{
			SchemaVersion:   2,
			GoldBalance:     -10,
			StatLevels:      map[string]int{"might": -3, " ": 4},
			HighScores:      HighScores{LongestSurvivalSeconds: -1, HighestKillCount: 3},
			AdWatchCounters: map[string]int{"gold_small": -2},
		}},
		{"future version", ProfileRecord{SchemaVersion: CurrentSchemaVersion + 1, SelectedCharacter: "Ranger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.record)

			for _, id := range StarterCharacters {
				if !got.IsCharacterUnlocked(id) {
					t.Errorf("starter %q missing", id)
				}
			}
			if !got.IsCharacterUnlocked(got.SelectedCharacter) {
				t.Errorf("SelectedCharacter %q is not unlocked", got.SelectedCharacter)
			}
			if got.GoldBalance < 0 {
				t.Errorf("GoldBalance = %d", got.GoldBalance)
			}
			for k, v := range got.StatLevels {
				if k == "" || v < 0 {
					t.Errorf("bad stat entry %q=%d", k, v)
				}
			}
			if got.HighScores.LongestSurvivalSeconds < 0 {
				t.Error("negative high score survived validation")
			}
			for k, v := range got.AdWatchCounters {
				if v < 0 {
					t.Errorf("negative ad counter %q=%d", k, v)
				}
			}
			if got.SchemaVersion < CurrentSchemaVersion {
				t.Errorf("SchemaVersion = %d", got.SchemaVersion)
			}
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	records := []ProfileRecord{
		{},
		CreateDefault(),
		{SchemaVersion: 1, UnlockedCharacters: map[string]struct{}{"KNIGHT ": {}}, SelectedCharacter: " Knight"},
		{SchemaVersion: 2, GoldBalance: -4, StatLevels: map[string]int{"might": 2, "might ": 5}},
		{
			SchemaVersion:   CurrentSchemaVersion,
			GoldBalance:     900,
			StatLevels:      map[string]int{"haste": 3},
			AdWatchCounters: map[string]int{"gold_medium": 7},
			LastAdWatchedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("MSK", 3*3600)),
			AdsRemoved:      true,
		},
		{SchemaVersion: 42, SelectedCharacter: "ghost"},
	}

	for i, r := range records {
		once := Validate(r)
		twice := Validate(once)
		if !once.Equal(twice) {
			t.Errorf("record %d: Validate is not idempotent:\n once=%+v\ntwice=%+v", i, once, twice)
		}
	}
}
