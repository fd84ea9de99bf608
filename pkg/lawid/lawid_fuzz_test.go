//go:build go1.18

package lawid

import "testing"

// FuzzParse tests that parsing never panics on arbitrary input and that
// accepted values round-trip unchanged.
func FuzzParse(f *testing.F) {
	f.Add("100.00001")
	f.Add("")
	f.Add("abc.00001")
	f.Add("100.1")
	f.Add(string([]byte{0x00, 0x01}))
	f.Add("1.00001\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := Parse(input)
		if err != nil {
			return
		}
		if id.String() != input {
			t.Errorf("accepted id %q changed on round-trip: %q", input, id)
		}
		if !Valid(id.String()) {
			t.Errorf("Parse accepted %q but Valid rejects it", input)
		}
	})
}
