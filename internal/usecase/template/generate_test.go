package template

import (
	"context"
	"testing"

	"github.com/schedula/clinic-scheduler/internal/domain/scheduling/schedulingtest"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

func newTemplateEnv() (*schedulingtest.Repo, *models.Doctor) {
	repo := schedulingtest.NewRepo()
	doctor := repo.AddDoctor(&models.Doctor{Name: "Dr. Vega", UserID: "user-doc"})
	return repo, doctor
}

func monWedTemplate(repo *schedulingtest.Repo, doctor *models.Doctor) *models.RecurringTemplate {
	return repo.AddTemplate(&models.RecurringTemplate{
		DoctorID:     doctor.ID,
		Name:         "Mon/Wed mornings",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
		DaysOfWeek:   []int{1, 3},
		WeeksAhead:   4,
		IsActive:     true,
	})
}

func TestGenerateCreatesWeekdayRows(t *testing.T) {
	repo, doctor := newTemplateEnv()
	tpl := monWedTemplate(repo, doctor)

	gen := NewGenerate(repo, "UTC", 120)
	out, err := gen.Execute(context.Background(), GenerateInput{
		CallerUserID: "user-doc",
		TemplateID:   tpl.ID,
		FromDate:     "2026-09-07", // a Monday
		ToDate:       "2026-09-20",
	})
	if err != nil {
		t.Fatal(err)
	}

	wantDates := []string{"2026-09-07", "2026-09-09", "2026-09-14", "2026-09-16"}
	if len(out.Generated) != len(wantDates) {
		t.Fatalf("generated %d rows, want %d", len(out.Generated), len(wantDates))
	}
	for i, row := range out.Generated {
		if row.Date != wantDates[i] {
			t.Errorf("row %d date = %s, want %s", i, row.Date, wantDates[i])
		}
		if row.StartTime != "09:00" || row.SlotDuration != 30 {
			t.Errorf("row %d did not inherit template params: %+v", i, row)
		}
		if row.RecurringTemplateID == nil || *row.RecurringTemplateID != tpl.ID {
			t.Errorf("row %d template ref = %v", i, row.RecurringTemplateID)
		}
	}

	saved := repo.Templates[tpl.ID]
	if saved.LastGeneratedDate != "2026-09-20" {
		t.Errorf("last generated date = %s", saved.LastGeneratedDate)
	}
}

func TestGenerateSkipsExistingRows(t *testing.T) {
	repo, doctor := newTemplateEnv()
	tpl := monWedTemplate(repo, doctor)

	// A manually created schedule already sits on the first Monday.
	repo.AddSchedule(&models.DaySchedule{
		DoctorID:     doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "14:00",
		EndTime:      "16:00",
		SlotDuration: 30,
	})

	gen := NewGenerate(repo, "UTC", 120)
	out, err := gen.Execute(context.Background(), GenerateInput{
		CallerUserID: "user-doc",
		TemplateID:   tpl.ID,
		FromDate:     "2026-09-07",
		ToDate:       "2026-09-13",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(out.Generated) != 1 || out.Generated[0].Date != "2026-09-09" {
		t.Errorf("generated = %+v", out.Generated)
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "2026-09-07" {
		t.Errorf("skipped = %v", out.Skipped)
	}

	// Even a forced regeneration must leave the manual row alone.
	out, err = gen.Execute(context.Background(), GenerateInput{
		CallerUserID:     "user-doc",
		TemplateID:       tpl.ID,
		FromDate:         "2026-09-07",
		ToDate:           "2026-09-07",
		OverrideExisting: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Generated) != 0 {
		t.Errorf("manual row was regenerated: %+v", out.Generated)
	}
	for _, s := range repo.Schedules {
		if s.Date == "2026-09-07" && s.StartTime != "14:00" {
			t.Errorf("manual row mutated: %+v", s)
		}
	}
}

func TestGenerateOverrideExistingRefreshesTemplateRows(t *testing.T) {
	repo, doctor := newTemplateEnv()
	tpl := monWedTemplate(repo, doctor)

	gen := NewGenerate(repo, "UTC", 120)
	if _, err := gen.Execute(context.Background(), GenerateInput{
		CallerUserID: "user-doc",
		TemplateID:   tpl.ID,
		FromDate:     "2026-09-07",
		ToDate:       "2026-09-09",
	}); err != nil {
		t.Fatal(err)
	}

	// The doctor moves the template an hour later.
	tpl.StartTime = "10:00"
	tpl.EndTime = "13:00"
	repo.Templates[tpl.ID] = tpl

	out, err := gen.Execute(context.Background(), GenerateInput{
		CallerUserID:     "user-doc",
		TemplateID:       tpl.ID,
		FromDate:         "2026-09-07",
		ToDate:           "2026-09-09",
		OverrideExisting: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Generated) != 2 {
		t.Fatalf("regenerated %d rows, want 2", len(out.Generated))
	}
	for _, row := range out.Generated {
		if row.StartTime != "10:00" || row.EndTime != "13:00" {
			t.Errorf("row kept stale hours: %+v", row)
		}
	}

	// No duplicate rows per date.
	perDate := map[string]int{}
	for _, s := range repo.Schedules {
		perDate[s.Date]++
	}
	for date, n := range perDate {
		if n != 1 {
			t.Errorf("date %s has %d rows", date, n)
		}
	}
}

func TestGenerateOwnership(t *testing.T) {
	repo, doctor := newTemplateEnv()
	tpl := monWedTemplate(repo, doctor)

	_, err := NewGenerate(repo, "UTC", 120).Execute(context.Background(), GenerateInput{
		CallerUserID: "user-other",
		TemplateID:   tpl.ID,
		FromDate:     "2026-09-07",
		ToDate:       "2026-09-13",
	})
	if !httperr.IsKind(err, httperr.KindForbidden) {
		t.Errorf("foreign generate returned %v", err)
	}
}

func TestCreateTemplateValidation(t *testing.T) {
	repo, doctor := newTemplateEnv()
	create := NewCreate(repo, NewGenerate(repo, "UTC", 120))

	cases := []struct {
		name string
		in   CreateInput
		code string
	}{
		{"no name", CreateInput{CallerUserID: "user-doc", DoctorID: doctor.ID,
			StartTime: "09:00", EndTime: "12:00", SlotDuration: 30, DaysOfWeek: []int{1}}, "missing_name"},
		{"inverted window", CreateInput{CallerUserID: "user-doc", DoctorID: doctor.ID, Name: "x",
			StartTime: "12:00", EndTime: "09:00", SlotDuration: 30, DaysOfWeek: []int{1}}, "invalid_window"},
		{"no weekdays", CreateInput{CallerUserID: "user-doc", DoctorID: doctor.ID, Name: "x",
			StartTime: "09:00", EndTime: "12:00", SlotDuration: 30}, "missing_weekdays"},
		{"weekday out of range", CreateInput{CallerUserID: "user-doc", DoctorID: doctor.ID, Name: "x",
			StartTime: "09:00", EndTime: "12:00", SlotDuration: 30, DaysOfWeek: []int{7}}, "invalid_weekday"},
	}
	for _, c := range cases {
		if _, err := create.Execute(context.Background(), c.in); !httperr.IsBusiness(err, c.code) {
			t.Errorf("%s: got %v, want %s", c.name, err, c.code)
		}
	}
}

// nextWeekday returns the first date strictly after today falling on the
// given weekday, so override tests never collide with the same-day
// lead-time guard.
func nextWeekday(weekday int) string {
	d := timeutil.AddDays(timeutil.Today("UTC"), 1)
	for timeutil.Weekday(d) != weekday {
		d = timeutil.AddDays(d, 1)
	}
	return d
}

func TestCreateOverride(t *testing.T) {
	repo, doctor := newTemplateEnv()
	tpl := monWedTemplate(repo, doctor)
	tpl.AllowOverrides = true
	repo.Templates[tpl.ID] = tpl

	override := NewCreateOverride(repo, "UTC", 120)

	monday := nextWeekday(1)
	row, err := override.Execute(context.Background(), OverrideInput{
		CallerUserID: "user-doc",
		TemplateID:   tpl.ID,
		Date:         monday,
		StartTime:    "10:00",
		EndTime:      "11:00",
		Reason:       "conference in the morning",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !row.IsOverride || row.OverrideReason != "conference in the morning" {
		t.Errorf("override row = %+v", row)
	}
	if row.StartTime != "10:00" || row.EndTime != "11:00" {
		t.Errorf("override hours = %s-%s", row.StartTime, row.EndTime)
	}
	// Fallback to template parameters where unspecified.
	if row.SlotDuration != 30 {
		t.Errorf("slot duration = %d", row.SlotDuration)
	}

	// Tuesday is not covered by the template.
	_, err = override.Execute(context.Background(), OverrideInput{
		CallerUserID: "user-doc",
		TemplateID:   tpl.ID,
		Date:         nextWeekday(2),
	})
	if !httperr.IsBusiness(err, "weekday_not_covered") {
		t.Errorf("off-pattern override returned %v", err)
	}

	// Past dates are rejected.
	_, err = override.Execute(context.Background(), OverrideInput{
		CallerUserID: "user-doc",
		TemplateID:   tpl.ID,
		Date:         "2020-01-06",
	})
	if !httperr.IsBusiness(err, "past_date") {
		t.Errorf("past override returned %v", err)
	}

	tpl.AllowOverrides = false
	repo.Templates[tpl.ID] = tpl
	_, err = override.Execute(context.Background(), OverrideInput{
		CallerUserID: "user-doc",
		TemplateID:   tpl.ID,
		Date:         monday,
	})
	if !httperr.IsBusiness(err, "overrides_not_allowed") {
		t.Errorf("locked template override returned %v", err)
	}
}

func TestLeadTimeGuard(t *testing.T) {
	// Future dates are never guarded.
	if err := checkLeadTime("UTC", "2099-01-01", "09:00", 120, false); err != nil {
		t.Errorf("future date guarded: %v", err)
	}
	// The bypass flag disables the rule entirely.
	if err := checkLeadTime("UTC", "2099-01-01", "00:00", 1<<20, true); err != nil {
		t.Errorf("bypass ignored: %v", err)
	}
}
