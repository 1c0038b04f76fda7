package domain

import (
	"testing"
)

// FuzzParseAddress checks that parsing never panics and that every accepted
// input round-trips through its text form.
func FuzzParseAddress(f *testing.F) {
	f.Add("")
	f.Add("AMuiRHoJLS2zhpRtUqVJUpYi4xEGbZcmMsJpqVT9uCJw")
	f.Add("11111111111111111111111111111111")
	f.Add("not-an-address")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		addr, err := ParseAddress(input)
		if err != nil {
			if !addr.IsZero() {
				t.Errorf("error returned with non-zero address for %q", input)
			}
			return
		}
		again, err := ParseAddress(addr.String())
		if err != nil {
			t.Fatalf("re-parse failed for %q: %v", addr.String(), err)
		}
		if again != addr {
			t.Errorf("round trip mismatch for %q", input)
		}
	})
}
