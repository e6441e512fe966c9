package domain

import "testing"

func TestParseProjectStatus(t *testing.T) {
	if s, err := ParseProjectStatus("active"); err != nil || s != ProjectActive {
		t.Errorf("active: %v %v", s, err)
	}
	if s, err := ParseProjectStatus("archived"); err != nil || s != ProjectArchived {
		t.Errorf("archived: %v %v", s, err)
	}
	if _, err := ParseProjectStatus("paused"); err == nil {
		t.Error("paused should be rejected")
	}
	if _, err := ParseProjectStatus(""); err == nil {
		t.Error("empty should be rejected")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	p := Project{ID: "p1", Name: "Legacy"}
	p.Normalize()
	if p.Status != ProjectActive {
		t.Errorf("status = %q, want active", p.Status)
	}
	if p.ConsultantIDs == nil {
		t.Error("ConsultantIDs should not be nil")
	}

	// Already-set fields are left alone.
	p = Project{Status: ProjectArchived, ConsultantIDs: []string{"a@x.com"}}
	p.Normalize()
	if p.Status != ProjectArchived || len(p.ConsultantIDs) != 1 {
		t.Errorf("normalize clobbered fields: %+v", p)
	}
}

func TestAddConsultantIdempotent(t *testing.T) {
	p := Project{ConsultantIDs: []string{}}
	if !p.AddConsultant("a@x.com") {
		t.Error("first add should report a change")
	}
	if p.AddConsultant("a@x.com") {
		t.Error("second add should be a no-op")
	}
	if len(p.ConsultantIDs) != 1 {
		t.Errorf("consultants = %v", p.ConsultantIDs)
	}
}

func TestReplaceEmail(t *testing.T) {
	p := Project{
		ManagerID:     "old@x.com",
		ConsultantIDs: []string{"a@x.com", "old@x.com"},
	}
	if !p.ReplaceEmail("old@x.com", "new@x.com") {
		t.Error("replace should report a change")
	}
	if p.ManagerID != "new@x.com" {
		t.Errorf("manager = %s", p.ManagerID)
	}
	if p.ConsultantIDs[1] != "new@x.com" || p.ConsultantIDs[0] != "a@x.com" {
		t.Errorf("consultants = %v", p.ConsultantIDs)
	}

	if p.ReplaceEmail("absent@x.com", "other@x.com") {
		t.Error("replace with no occurrences should report no change")
	}
}
