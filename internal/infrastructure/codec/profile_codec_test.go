package codec

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/waste3d/survivors-profile/internal/domain"
)

func sampleProfile() domain.ProfileRecord {
	p := domain.CreateDefault()
	p.GoldBalance = 1234
	p.UnlockCharacter("necromancer")
	_ = p.SelectCharacter("necromancer")
	p.SetStatLevel("vitality", 4)
	p.SetStatLevel("might", 2)
	p.SetStatLevel("greed", 0)
	p.UpdateHighScores(600, 812, 31, 95)
	p.RecordAdWatched("gold_small", time.Date(2026, 7, 9, 18, 30, 15, 250, time.UTC))
	p.RecordAdWatched("gold_large", time.Date(2026, 7, 9, 18, 10, 0, 0, time.UTC))
	p.AdsRemoved = true
	return p
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		p    domain.ProfileRecord
	}{
		{"default", domain.CreateDefault()},
		{"full", sampleProfile()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.p)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(got.Repairs) != 0 {
				t.Errorf("unexpected repairs: %v", got.Repairs)
			}
			if !got.Record.Equal(tt.p) {
				t.Errorf("round trip mismatch:\n got=%+v\nwant=%+v", got.Record, tt.p)
			}
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	a, _ := Encode(sampleProfile())
	b, _ := Encode(sampleProfile())
	if !bytes.Equal(a, b) {
		t.Errorf("encoding differs between runs:\n%s\n%s", a, b)
	}
}

func TestDecode_StatPairMismatch(t *testing.T) {
	blob := []byte(`{"schemaVersion":3,"goldBalance":10,"unlockedCharacters":["wanderer"],"selectedCharacter":"wanderer",
		"statLevelKeys":["might","vitality"],"statLevelValues":[2]}`)

	got, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Repairs) != 1 || got.Repairs[0].Field != "statLevels" {
		t.Fatalf("Repairs = %v, want one statLevels repair", got.Repairs)
	}
	if got.Record.GetStatLevel("might") != 2 {
		t.Errorf("might = %d, want 2", got.Record.GetStatLevel("might"))
	}
	if _, ok := got.Record.StatLevels["vitality"]; ok {
		t.Error("vitality should have been truncated away")
	}
	if got.Record.GoldBalance != 10 {
		t.Errorf("GoldBalance = %d, want 10", got.Record.GoldBalance)
	}
}

func TestDecode_Corrupt(t *testing.T) {
	for _, blob := range []string{"", "{", "not json", `{"goldBalance":"lots"}`, `[1,2,3]`} {
		_, err := Decode([]byte(blob))
		if !errors.Is(err, domain.ErrCorruptData) {
			t.Errorf("Decode(%q) err = %v, want ErrCorruptData", blob, err)
		}
	}
}

func TestDecode_BadTimestamp(t *testing.T) {
	got, err := Decode([]byte(`{"schemaVersion":3,"lastAdWatchedAt":"last tuesday"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Record.LastAdWatchedAt.IsZero() {
		t.Errorf("LastAdWatchedAt = %v, want zero", got.Record.LastAdWatchedAt)
	}
	if len(got.Repairs) != 1 || got.Repairs[0].Field != "lastAdWatchedAt" {
		t.Errorf("Repairs = %v", got.Repairs)
	}
}

func TestPairList(t *testing.T) {
	tests := []struct {
		name        string
		list        PairList
		wantLen     int
		wantDropped int
	}{
		{"equal", PairList{Keys: []string{"a", "b"}, Values: []int{1, 2}}, 2, 0},
		{"more keys", PairList{Keys: []string{"a", "b", "c"}, Values: []int{1}}, 1, 2},
		{"more values", PairList{Keys: []string{"a"}, Values: []int{1, 2}}, 1, 1},
		{"empty", PairList{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, dropped := tt.list.Map()
			if len(m) != tt.wantLen || dropped != tt.wantDropped {
				t.Errorf("Map() = %v, %d; want len %d, dropped %d", m, dropped, tt.wantLen, tt.wantDropped)
			}
		})
	}
}
