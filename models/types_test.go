package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewBriefRecordDefaults(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	r := NewBriefRecord(now)

	if r.ClientStatus != ClientStatusNew {
		t.Errorf("clientStatus = %q, want new", r.ClientStatus)
	}
	if r.Date != "2026-08-30" {
		t.Errorf("date = %q, want 2026-08-30", r.Date)
	}
	if r.LogoType != LogoTypeText {
		t.Errorf("logoType = %q, want text", r.LogoType)
	}
	if r.Budget != "100-150" {
		t.Errorf("budget = %q, want 100-150", r.Budget)
	}
	if len(r.Applications) != len(ApplicationCatalog) {
		t.Errorf("got %d application keys, want %d", len(r.Applications), len(ApplicationCatalog))
	}
	for key, selected := range r.Applications {
		if selected {
			t.Errorf("application %q should default to false", key)
		}
	}
}

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr bool
		ctype   string
	}{
		{"png", "data:image/png;base64,aGVsbG8=", false, "image/png"},
		{"jpeg", "data:image/jpeg;base64,aGVsbG8=", false, "image/jpeg"},
		{"no prefix", "aGVsbG8=", true, ""},
		{"not base64 uri", "data:image/png,rawbytes", true, ""},
		{"bad payload", "data:image/png;base64,!!!", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeDataURI(tt.uri)
			if tt.wantErr {
				if !errors.Is(err, ErrBadImage) {
					t.Errorf("got %v, want ErrBadImage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.ContentType != tt.ctype {
				t.Errorf("content type = %q, want %q", img.ContentType, tt.ctype)
			}
			if string(img.Data) != "hello" {
				t.Errorf("payload = %q, want hello", img.Data)
			}
		})
	}
}

func TestApplyIgnoresUnknownEnumValues(t *testing.T) {
	r := NewBriefRecord(time.Now())

	bad := "platinum"
	good := "200-500"
	r.Apply(BriefPatch{Budget: &bad})
	if r.Budget != "100-150" {
		t.Errorf("budget = %q after invalid patch, want the default kept", r.Budget)
	}
	r.Apply(BriefPatch{Budget: &good})
	if r.Budget != "200-500" {
		t.Errorf("budget = %q, want 200-500", r.Budget)
	}

	badLogo := "hologram"
	r.Apply(BriefPatch{LogoType: &badLogo})
	if r.LogoType != LogoTypeText {
		t.Errorf("logoType = %q after invalid patch", r.LogoType)
	}

	badStatus := "vip"
	current := ClientStatusCurrent
	r.Apply(BriefPatch{ClientStatus: &badStatus})
	if r.ClientStatus != ClientStatusNew {
		t.Errorf("clientStatus = %q after invalid patch", r.ClientStatus)
	}
	r.Apply(BriefPatch{ClientStatus: &current})
	if r.ClientStatus != ClientStatusCurrent {
		t.Errorf("clientStatus = %q, want current", r.ClientStatus)
	}
}

func TestApplyMergesApplications(t *testing.T) {
	r := NewBriefRecord(time.Now())
	r.Apply(BriefPatch{Applications: map[string]bool{"businessCard": true}})
	r.Apply(BriefPatch{Applications: map[string]bool{"socialMedia": true}})

	if !r.Applications["businessCard"] || !r.Applications["socialMedia"] {
		t.Errorf("applications = %v, want both selections kept", r.Applications)
	}
}

func TestMissingRequired(t *testing.T) {
	r := NewBriefRecord(time.Now())
	if got := r.MissingRequired(); len(got) != 2 {
		t.Fatalf("missing = %v, want clientName and email", got)
	}

	r.ClientName = "Layla"
	if got := r.MissingRequired(); len(got) != 1 || got[0] != "email" {
		t.Errorf("missing = %v, want [email]", got)
	}

	r.Email = "layla@example.com"
	if got := r.MissingRequired(); len(got) != 0 {
		t.Errorf("missing = %v, want none", got)
	}
}

func TestAddMoodboardImageLimits(t *testing.T) {
	r := NewBriefRecord(time.Now())
	img := MoodboardImage{ContentType: "image/png", Data: []byte("0123456789")}

	if err := r.AddMoodboardImage(img, 4); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("got %v, want ErrImageTooLarge", err)
	}
	if len(r.Moodboard) != 0 {
		t.Error("a rejected image must not be stored")
	}

	for i := 0; i < MoodboardLimit; i++ {
		if err := r.AddMoodboardImage(img, 1024); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}
	if err := r.AddMoodboardImage(img, 1024); !errors.Is(err, ErrMoodboardFull) {
		t.Errorf("got %v, want ErrMoodboardFull", err)
	}

	if err := r.RemoveMoodboardImage(99); !errors.Is(err, ErrNoSuchImage) {
		t.Errorf("got %v, want ErrNoSuchImage", err)
	}
	if err := r.RemoveMoodboardImage(0); err != nil {
		t.Errorf("remove failed: %v", err)
	}
	if len(r.Moodboard) != MoodboardLimit-1 {
		t.Errorf("got %d images after removal", len(r.Moodboard))
	}
}

func TestMoodboardImageJSONRoundTrip(t *testing.T) {
	img := MoodboardImage{ContentType: "image/png", Data: []byte("hello")}

	raw, err := img.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(raw), "data:image/png;base64,") {
		t.Errorf("wire form %s is not a data URI", raw)
	}

	var back MoodboardImage
	if err := back.UnmarshalJSON(raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.ContentType != "image/png" || string(back.Data) != "hello" {
		t.Errorf("round trip gave %q %q", back.ContentType, back.Data)
	}
}
