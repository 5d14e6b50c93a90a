package gate

import "testing"

func TestParseByteSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{in: "1024", want: 1024},
		{in: "512b", want: 512},
		{in: "1kb", want: 1024},
		{in: "1KB", want: 1024},
		{in: "10mb", want: 10 << 20},
		{in: "10MB", want: 10 << 20},
		{in: "2gb", want: 2 << 30},
		{in: " 1kb ", want: 1024},
	}
	for _, tc := range cases {
		got, err := ParseByteSize(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestParseByteSizeRejectsMalformed(t *testing.T) {
	cases := []string{"", "mb", "10tb", "ten", "1.5mb", "-1kb", "10 mb x"}
	for _, in := range cases {
		if _, err := ParseByteSize(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}
