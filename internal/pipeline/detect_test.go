package pipeline

import "testing"

func TestDetectTechpack(t *testing.T) {
	cases := []struct {
		name        string
		subject     string
		text        string
		attachments []string
		want        bool
	}{
		{
			name:        "subject keywords with measurements and attachment",
			subject:     "Tech pack SS26 collar spec",
			text:        "collar stand height 2.5cm spi 12",
			attachments: []string{"pack.pdf"},
			want:        true,
		},
		{
			name:    "invoice mail",
			subject: "Invoice March",
			text:    "payment due 2026",
			want:    false,
		},
		{
			name: "empty mail",
			want: false,
		},
		{
			name:        "attachment alone is not enough",
			subject:     "fyi",
			text:        "see attached",
			attachments: []string{"scan.pdf"},
			want:        false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectTechpack(tc.subject, tc.text, tc.attachments)
			if got.IsTechpack != tc.want {
				t.Fatalf("got %v score %v", got.IsTechpack, got.Score)
			}
			if got.IsTechpack && got.Reason != "rules_positive" {
				t.Fatalf("reason %q", got.Reason)
			}
			if !got.IsTechpack && got.Reason != "rules_negative" {
				t.Fatalf("reason %q", got.Reason)
			}
		})
	}
}

func TestCountNumberRuns(t *testing.T) {
	if got := countNumberRuns("collar 2.5cm spi 12"); got != 3 {
		t.Fatalf("got %d", got)
	}
	if got := countNumberRuns("no digits here"); got != 0 {
		t.Fatalf("got %d", got)
	}
}
