package util

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedResult string
	}{
		{"Simple Name", "DJ Nova", "dj-nova"},
		{"Accents Stripped", "Café Présence", "caf-prsence"},
		{"Digits Kept", "Studio 54", "studio-54"},
		{"Punctuation Dropped", "L'Olympia!", "lolympia"},
		{"Underscores Kept", "the_venue", "the_venue"},
		{"Already Slug", "blue-note", "blue-note"},
		{"Empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Slugify(tc.input)
			if result != tc.expectedResult {
				t.Errorf("Slugify(%q) = %q; want %q", tc.input, result, tc.expectedResult)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedResult bool
	}{
		{"Plain Text", "hello", true},
		{"Empty", "", false},
		{"Spaces Only", "   ", false},
		{"Tabs And Newlines", "\t\n ", false},
		{"Padded Text", "  hi  ", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := NotBlank(tc.input)
			if result != tc.expectedResult {
				t.Errorf("NotBlank(%q) = %v; want %v", tc.input, result, tc.expectedResult)
			}
		})
	}
}

func TestTruncateContent(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		max            int
		expectedResult string
	}{
		{"Shorter Than Max", "short", 10, "short"},
		{"Exactly Max", "12345", 5, "12345"},
		{"Longer Than Max", "123456", 5, "12345…"},
		{"Multibyte Runes", "ééééé", 3, "ééé…"},
		{"Empty", "", 5, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := TruncateContent(tc.input, tc.max)
			if result != tc.expectedResult {
				t.Errorf("TruncateContent(%q, %d) = %q; want %q",
					tc.input, tc.max, result, tc.expectedResult)
			}
		})
	}
}

func TestGenerateShortCode(t *testing.T) {
	code := GenerateShortCode(8)
	if len(code) != 8 {
		t.Fatalf("GenerateShortCode(8) returned %q with length %d", code, len(code))
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			t.Errorf("unexpected character %q in code %q", r, code)
		}
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode()
	if len(code) != 4 {
		t.Fatalf("GenerateVerificationCode returned %q with length %d", code, len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Errorf("unexpected character %q in code %q", r, code)
		}
	}
}

func TestFormatTime(t *testing.T) {
	testTime := time.Date(2025, 4, 5, 14, 30, 45, 0, time.UTC)

	testCases := []struct {
		name           string
		format         string
		expectedResult string
	}{
		{"RFC3339", time.RFC3339, "2025-04-05T14:30:45Z"},
		{"Simple Date", "2006-01-02", "2025-04-05"},
		{"Time Only", "15:04:05", "14:30:45"},
		{"Date and Time", "2006-01-02 15:04:05", "2025-04-05 14:30:45"},
		{"Kitchen Time", time.Kitchen, "2:30PM"},
		{"Empty Format", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := formatTime(tc.format, testTime)
			if result != tc.expectedResult {
				t.Errorf("formatTime(%q, %v) = %q; want %q",
					tc.format, testTime, result, tc.expectedResult)
			}
		})
	}
}
