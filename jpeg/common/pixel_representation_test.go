package common

import "testing"

func TestSignedToUnsigned8(t *testing.T) {
	in := []byte{0x80, 0xFF, 0x00, 0x01, 0x7F}
	want := []byte{0, 127, 128, 129, 255}

	got := SignedToUnsigned8(in)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d (%d): got %d, want %d", i, int8(in[i]), got[i], want[i])
		}
	}
	if in[0] != 0x80 {
		t.Error("input was modified")
	}
}

func TestRoundTrip_SignedUnsignedConversion(t *testing.T) {
	in := make([]byte, 256)
	for i := range in {
		in[i] = byte(i)
	}

	back := UnsignedToSigned8(SignedToUnsigned8(in))
	for i := range in {
		if back[i] != in[i] {
			t.Fatalf("sample %d: got %d, want %d", i, back[i], in[i])
		}
	}
}
