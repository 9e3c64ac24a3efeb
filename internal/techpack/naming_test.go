package techpack

import "testing"

func TestResolveName(t *testing.T) {
	rules := DefaultRules()
	cases := []struct {
		name    string
		section string
		raw     string
		want    string
	}{
		{name: "empty", section: "collar", raw: "", want: "collar_dimension"},
		{name: "blank", section: "collar", raw: "   ", want: "collar_dimension"},
		{name: "stop words and section stripped", section: "front", raw: "Front panel detail", want: "front_panel"},
		{name: "noise residue", section: "back", raw: "back", want: "back_spec"},
		{name: "hyphens collapse", section: "cuff", raw: "top-stitch run", want: "cuff_top_stitch_run"},
		{name: "already prefixed", section: "sleeve", raw: "sleeve_placket", want: "sleeve_placket"},
		{name: "mixed case", section: "collar", raw: "Stand  Height", want: "collar_stand_height"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveName(rules, tc.section, tc.raw); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
