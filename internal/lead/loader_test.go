package lead

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleLead = `item_id: TL-1001
lead_type: Tax Lien
owner_occupied: "No"
intelligence:
  lien_type: Property Tax
  tax_debt_amount: 48250
  redemption_deadline: "2026-03-25"
`

func TestParseYAML(t *testing.T) {
	ctx, err := ParseYAML([]byte(sampleLead))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ctx.ItemID != "TL-1001" || ctx.LeadType != "Tax Lien" {
		t.Fatalf("unexpected lead: %+v", ctx)
	}
	if ctx.Occupancy != OccupancyNo {
		t.Fatalf("occupancy = %q", ctx.Occupancy)
	}
	if deadline, ok := ctx.Intelligence.String("redemption_deadline"); !ok || deadline != "2026-03-25" {
		t.Fatalf("redemption_deadline = %q (ok=%t)", deadline, ok)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	if _, err := ParseYAML([]byte("")); err == nil {
		t.Fatalf("expected empty payload to fail")
	}
	if _, err := ParseYAML([]byte("lead_type: Tax Lien\n")); err == nil {
		t.Fatalf("expected missing item_id to fail")
	}
	if _, err := ParseYAML([]byte("{{not yaml")); err == nil {
		t.Fatalf("expected malformed yaml to fail")
	}
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	second := `item_id: PR-2002
lead_type: Probate/Estate
owner_occupied: Unknown
`
	if err := os.WriteFile(filepath.Join(root, "b-lead.yaml"), []byte(second), 0644); err != nil {
		t.Fatalf("write lead: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a-lead.yml"), []byte(sampleLead), 0644); err != nil {
		t.Fatalf("write lead: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not a lead"), 0644); err != nil {
		t.Fatalf("write decoy: %v", err)
	}

	files, err := LoadDir(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(files))
	}
	// Stable path order regardless of directory enumeration.
	if files[0].Lead.ItemID != "TL-1001" || files[1].Lead.ItemID != "PR-2002" {
		t.Fatalf("unexpected order: %s, %s", files[0].Lead.ItemID, files[1].Lead.ItemID)
	}
	if files[1].Lead.Occupancy != OccupancyUnknown {
		t.Fatalf("occupancy = %q", files[1].Lead.Occupancy)
	}
}

func TestLoadDirMissing(t *testing.T) {
	files, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if files != nil {
		t.Fatalf("expected nil for missing dir, got %v", files)
	}
}
