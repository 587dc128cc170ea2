package charts

import (
	"bytes"
	"errors"
	"testing"

	"fintrack/internal/core"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRender(t *testing.T) {
	d := core.Dashboard{
		PieChart: []core.CategoryTotal{
			{Category: "Food", Total: core.Money{Cents: 50000}},
			{Category: "Rent", Total: core.Money{Cents: 120000}},
		},
		LineChart: []core.DailyTotal{
			{Date: core.NewDate(2025, 3, 1), Total: core.Money{Cents: 20000}},
			{Date: core.NewDate(2025, 3, 4), Total: core.Money{Cents: 150000}},
		},
	}

	for _, kind := range []string{KindCategories, KindDaily} {
		t.Run(kind, func(t *testing.T) {
			img, err := Render(kind, d)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !bytes.HasPrefix(img, pngMagic) {
				t.Fatal("expected PNG output")
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	for _, kind := range []string{KindCategories, KindDaily} {
		if _, err := Render(kind, core.Dashboard{}); !errors.Is(err, ErrNoData) {
			t.Errorf("%s: expected ErrNoData, got %v", kind, err)
		}
	}
}

func TestRender_UnknownKind(t *testing.T) {
	if _, err := Render("radar", core.Dashboard{}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestDailyLine_SingleDay(t *testing.T) {
	img, err := DailyLine([]core.DailyTotal{{Date: core.NewDate(2025, 3, 2), Total: core.Money{Cents: 999}}})
	if err != nil {
		t.Fatalf("DailyLine: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("expected PNG output")
	}
}
