package timeutil

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:30", 570},
		{"12:00", 720},
		{"17:45", 1065},
		{"23:59", 1439},
	}
	for _, c := range cases {
		if got := ToMinutes(c.in); got != c.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m <= 1439; m++ {
		hm := FromMinutes(m)
		if got := ToMinutes(hm); got != m {
			t.Fatalf("ToMinutes(FromMinutes(%d)) = %d", m, got)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "12:00"}
	for _, v := range valid {
		if !IsValidTime(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	invalid := []string{"24:00", "9:30", "09:60", "0900", "09:3", "", "ab:cd", "09:30:00"}
	for _, v := range invalid {
		if IsValidTime(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if !IsValidDate("2026-08-31") {
		t.Error("expected 2026-08-31 to be valid")
	}
	invalid := []string{"2026-13-01", "2026-02-30", "26-08-31", "2026/08/31", ""}
	for _, v := range invalid {
		if IsValidDate(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestAddDays(t *testing.T) {
	if got := AddDays("2026-08-31", 1); got != "2026-09-01" {
		t.Errorf("AddDays month rollover: got %s", got)
	}
	if got := AddDays("2026-12-31", 1); got != "2027-01-01" {
		t.Errorf("AddDays year rollover: got %s", got)
	}
}

func TestWeekday(t *testing.T) {
	// 2026-08-31 is a Monday.
	if got := Weekday("2026-08-31"); got != 1 {
		t.Errorf("Weekday(2026-08-31) = %d, want 1", got)
	}
	if got := Weekday("2026-08-30"); got != 0 {
		t.Errorf("Weekday(2026-08-30) = %d, want 0", got)
	}
}
