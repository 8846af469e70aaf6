package document

import "testing"

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{1500, "₹1,500"},
		{100000, "₹1,00,000"},
		{1000000, "₹10,00,000"},
		{12345678, "₹1,23,45,678"},
		{-500, "-₹500"},
		{-123456, "-₹1,23,456"},
		{499.6, "₹500"},
	}
	for _, tc := range cases {
		if got := FormatINR(tc.in); got != tc.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
