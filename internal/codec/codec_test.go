package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/julianstephens/mindflow/internal/errors"
	"github.com/julianstephens/mindflow/internal/models"
)

func TestHabitRoundTrip(t *testing.T) {
	reminder := "07:30"
	habits := []models.Habit{
		{
			ID:              "h1",
			Name:            "Morning run",
			Emoji:           "🏃‍♀️",
			Icon:            "🏃‍♀️",
			Frequency:       models.FrequencyDaily,
			ReminderTime:    &reminder,
			CompletionDates: []string{"2026-10-14", "2026-10-16"},
			CreatedDate:     "2026-10-01",
		},
		{
			ID:              "h2",
			Name:            "Read \"Dune\"",
			Emoji:           "📚",
			Icon:            "📚",
			Frequency:       models.FrequencyWeekly,
			CompletionDates: []string{},
			CreatedDate:     "2026-10-02",
		},
	}

	text, err := Encode(habits)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	got, err := Decode[models.Habit](text)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if diff := cmp.Diff(habits, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMoodRoundTripKeepsOrderAndEmptyNote(t *testing.T) {
	empty := ""
	entries := []models.MoodEntry{
		{ID: "m2", Date: "2026-10-16", Time: "21:10", Emoji: "😄", MoodLevel: 5, Note: &empty, Tags: []string{"family"}},
		{ID: "m1", Date: "2026-10-15", Time: "08:00", Emoji: "😔", MoodLevel: 2, Tags: []string{}},
	}

	text, err := Encode(entries)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	got, err := Decode[models.MoodEntry](text)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUsesPersistedFieldNames(t *testing.T) {
	text, err := Encode([]models.MoodEntry{{ID: "m", Date: "2026-10-16", MoodLevel: 4, Tags: []string{}}})
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	want := `[{"id":"m","date":"2026-10-16","time":"","emoji":"","moodLevel":4,"note":null,"tags":[]}]`
	if text != want {
		t.Errorf("Encode() = %s, want %s", text, want)
	}

	nilText, err := Encode[models.Habit](nil)
	if err != nil || nilText != "[]" {
		t.Errorf("Encode(nil) = %q, %v, want []", nilText, err)
	}
}

func TestDecodeEmptyOrAbsent(t *testing.T) {
	for _, text := range []string{"", "   ", "null", "[]"} {
		got, err := Decode[models.Habit](text)
		if err != nil {
			t.Errorf("Decode(%q) error = %v, want nil", text, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Decode(%q) = %#v, want empty non-nil slice", text, got)
		}
	}
}

func TestDecodeCorrupt(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"truncated", `[{"id":"h1","name":"Run"`},
		{"not json", `habits go here`},
		{"wrong shape", `{"id":"h1"}`},
		{"wrong field type", `[{"id":"m","moodLevel":"high"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[models.MoodEntry](tt.text)
			if !errors.Is(err, apperrors.ErrCorrupt) {
				t.Errorf("Decode() error = %v, want ErrCorrupt", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Decode() = %#v, want empty collection", got)
			}
		})
	}
}

func TestSingleRecord(t *testing.T) {
	user := models.User{Name: "Sam", Email: "sam@example.com", PasswordHash: "$2a$04$x", RegisteredDate: "2026-10-16"}

	text, err := EncodeOne(user)
	if err != nil {
		t.Fatalf("failed to encode user: %v", err)
	}
	got, ok, err := DecodeOne[models.User](text)
	if err != nil || !ok {
		t.Fatalf("DecodeOne() = %v, %v", ok, err)
	}
	if diff := cmp.Diff(user, got); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}

	if _, ok, err := DecodeOne[models.User](""); ok || err != nil {
		t.Errorf("DecodeOne(\"\") = %v, %v, want absent", ok, err)
	}
	if _, ok, err := DecodeOne[models.User]("{broken"); ok || !errors.Is(err, apperrors.ErrCorrupt) {
		t.Errorf("DecodeOne(broken) = %v, %v, want ErrCorrupt", ok, err)
	}
}
