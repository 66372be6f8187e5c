package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	d, err := Parse("2025-11-03")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2025-11-03" {
		t.Errorf("round trip: got %q", d.String())
	}

	if _, err := Parse("03/11/2025"); err == nil {
		t.Error("expected error for wrong layout")
	}
	if _, err := Parse("2025-13-40"); err == nil {
		t.Error("expected error for impossible date")
	}
}

func TestJSON(t *testing.T) {
	d, _ := Parse("2025-11-03")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-11-03"` {
		t.Errorf("got %s", b)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2025-11-03"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Error("json round trip lost the date")
	}

	var zero Date
	b, _ = json.Marshal(zero)
	if string(b) != "null" {
		t.Errorf("zero date should marshal as null, got %s", b)
	}
}

func TestScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, 11, 3, 17, 45, 0, 0, time.Local)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if d.String() != "2025-11-03" {
		t.Errorf("expected time truncated to date, got %q", d.String())
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Error("scanning nil should yield the zero date")
	}
}

func TestFromTimeDropsClock(t *testing.T) {
	d := FromTime(time.Date(2025, 11, 3, 23, 59, 59, 0, time.UTC))
	if d.String() != "2025-11-03" {
		t.Errorf("got %q", d.String())
	}
}
