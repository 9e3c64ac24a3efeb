package techpack

import (
	"strings"
	"testing"

	"packlens/internal"
)

func TestExtractBaseInfo(t *testing.T) {
	got := ExtractBaseInfo([]string{
		"Buyer: H&M",
		"Style Ref- SH-2291",
		"Order No: 554120",
		"Fit: Regular",
		"Season: SS26",
		"Modified on: 2026-01-05",
		"Buyer: Zara",
	})

	want := internal.BaseInformation{
		Buyer:    "H&M",
		OrderNo:  "554120",
		StyleRef: "SH-2291",
		Fit:      "Regular",
		Season:   "SS26",
		Modified: "2026-01-05",
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestExtractBaseInfoContractAlias(t *testing.T) {
	got := ExtractBaseInfo([]string{"Contract No. : 77-A"})
	if got.OrderNo != "77-A" {
		t.Fatalf("orderNo %q", got.OrderNo)
	}
}

func TestExtractBaseInfoSkipsLongLines(t *testing.T) {
	long := "Buyer: " + strings.Repeat("x", 250)
	got := ExtractBaseInfo([]string{long})
	if got.Buyer != "" {
		t.Fatalf("buyer %q", got.Buyer)
	}
}
