package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "2023/01/01", "not-a-date", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidWeekStart(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"2024-01-01", true},  // Monday
		{"2024-01-08", true},  // Monday
		{"2024-01-02", false}, // Tuesday
		{"2024-01-07", false}, // Sunday
		{"bad", false},
		{"", false},
	}
	for _, c := range cases {
		if _, got := IsValidWeekStart(c.input); got != c.want {
			t.Errorf("IsValidWeekStart(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidPIN(t *testing.T) {
	valid := []string{"123456", "000000"}
	invalid := []string{"12345", "1234567", "12345a", "", "abcdef"}
	for _, pin := range valid {
		if !IsValidPIN(pin) {
			t.Errorf("IsValidPIN(%q) = false, want true", pin)
		}
	}
	for _, pin := range invalid {
		if IsValidPIN(pin) {
			t.Errorf("IsValidPIN(%q) = true, want false", pin)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"1234-5678", "0000-0001"}
	invalid := []string{"12345678", "1234-567", "abcd-efgh", ""}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}
