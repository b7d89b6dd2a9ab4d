package resume

import (
	"strings"
	"testing"
)

func TestEnsureID(t *testing.T) {
	if got := EnsureID("existing-id", WorkIDPrefix); got != "existing-id" {
		t.Fatalf("expected existing id preserved, got %q", got)
	}
	if got := EnsureID("", WorkIDPrefix); !strings.HasPrefix(got, WorkIDPrefix) {
		t.Fatalf("expected generated id with prefix %q, got %q", WorkIDPrefix, got)
	}
	// 纯空白视同缺失。
	if got := EnsureID("   ", ProjectIDPrefix); !strings.HasPrefix(got, ProjectIDPrefix) {
		t.Fatalf("expected generated id with prefix %q, got %q", ProjectIDPrefix, got)
	}
}

func TestEnsureWorkIDs_Idempotent(t *testing.T) {
	items := []WorkExperience{
		{Company: "Acme", Title: "Engineer"},
		{ID: "work-fixed", Company: "Beta", Title: "Developer"},
	}

	first := EnsureWorkIDs(items)
	if first[0].ID == "" || !strings.HasPrefix(first[0].ID, WorkIDPrefix) {
		t.Fatalf("expected generated id, got %q", first[0].ID)
	}
	if first[1].ID != "work-fixed" {
		t.Fatalf("expected existing id untouched, got %q", first[1].ID)
	}

	// 原样重存不得改写任何 id。
	assigned := first[0].ID
	second := EnsureWorkIDs(first)
	if second[0].ID != assigned {
		t.Fatalf("expected stable id across re-save, got %q then %q", assigned, second[0].ID)
	}
	if second[1].ID != "work-fixed" {
		t.Fatalf("expected stable id across re-save, got %q", second[1].ID)
	}
}

func TestEnsureEducationAndProjectIDs(t *testing.T) {
	edu := EnsureEducationIDs([]Education{{School: "GTU"}})
	if !strings.HasPrefix(edu[0].ID, EducationIDPrefix) {
		t.Fatalf("expected prefix %q, got %q", EducationIDPrefix, edu[0].ID)
	}

	projects := EnsureProjectIDs([]Project{{Title: "App"}})
	if !strings.HasPrefix(projects[0].ID, ProjectIDPrefix) {
		t.Fatalf("expected prefix %q, got %q", ProjectIDPrefix, projects[0].ID)
	}
}
