package codec_test

import (
	"errors"
	"testing"

	"github.com/cocosip/go-jpeg-dct/codec"
	"github.com/cocosip/go-jpeg-dct/jpeg/baseline"
	"github.com/cocosip/go-jpeg-dct/jpeg/common"
)

func TestCodecRegistry(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantFound bool
	}{
		{"by UID", baseline.UID, true},
		{"by name", "jpeg-baseline", true},
		{"by name, other case", "JPEG-Baseline", true},
		{"unknown", "non-existent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := codec.Get(tt.key)
			if !tt.wantFound {
				if !errors.Is(err, codec.ErrCodecNotFound) {
					t.Errorf("Get(%q) error = %v, want ErrCodecNotFound", tt.key, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Get(%q) unexpected error: %v", tt.key, err)
			}
			if c.UID() != baseline.UID {
				t.Errorf("Get(%q).UID() = %q, want %q", tt.key, c.UID(), baseline.UID)
			}
			if c.Name() != "jpeg-baseline" {
				t.Errorf("Get(%q).Name() = %q, want jpeg-baseline", tt.key, c.Name())
			}
		})
	}
}

func TestListCodecs(t *testing.T) {
	found := false
	for _, c := range codec.List() {
		if c.UID() == baseline.UID {
			found = true
		}
	}
	if !found {
		t.Error("List() did not include JPEG Baseline codec")
	}
}

type stubCodec struct{ name, uid string }

func (s *stubCodec) Encode(codec.Frame, codec.Options) ([]byte, error) { return nil, nil }
func (s *stubCodec) Decode([]byte) (codec.Frame, error) { return codec.Frame{}, nil }
func (s *stubCodec) UID() string { return s.uid }
func (s *stubCodec) Name() string { return s.name }

func TestRegistry(t *testing.T) {
	r := codec.NewRegistry()
	a := &stubCodec{name: "b-codec", uid: "1.1"}
	b := &stubCodec{name: "a-codec", uid: "1.2"}
	r.Register(a)
	r.Register(b)

	list := r.List()
	if len(list) != 2 || list[0] != b || list[1] != a {
		t.Fatalf("List() = %v, want [a-codec b-codec]", list)
	}
	for _, key := range []string{"b-codec", "1.1"} {
		c, err := r.Get(key)
		if err != nil || c != a {
			t.Errorf("Get(%q) = %v, %v; want b-codec", key, c, err)
		}
	}

	// Re-registering a UID replaces the old codec under both keys
	c := &stubCodec{name: "c-codec", uid: "1.1"}
	r.Register(c)
	if _, err := r.Get("b-codec"); !errors.Is(err, codec.ErrCodecNotFound) {
		t.Errorf("replaced codec still found by name: %v", err)
	}
	if got, _ := r.Get("1.1"); got != c {
		t.Errorf("Get(1.1) = %v, want c-codec", got)
	}
	if got := len(r.List()); got != 2 {
		t.Errorf("List() returned %d codecs after replacement, want 2", got)
	}
}

func TestFrameValidate(t *testing.T) {
	tests := []struct {
		name    string
		frame   codec.Frame
		wantErr bool
	}{
		{"gray", codec.Frame{Pixels: make([]byte, 12), Width: 4, Height: 3, Components: 1}, false},
		{"rgb", codec.Frame{Pixels: make([]byte, 36), Width: 4, Height: 3, Components: 3}, false},
		{"zero width", codec.Frame{Pixels: make([]byte, 12), Width: 0, Height: 3, Components: 1}, true},
		{"no components", codec.Frame{Pixels: make([]byte, 12), Width: 4, Height: 3}, true},
		{"short buffer", codec.Frame{Pixels: make([]byte, 35), Width: 4, Height: 3, Components: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, codec.ErrInvalidFrame) {
				t.Errorf("Validate() error = %v, want ErrInvalidFrame", err)
			}
		})
	}
}

func TestBaselineCodecEncodeDecode(t *testing.T) {
	c, err := codec.Get(baseline.UID)
	if err != nil {
		t.Fatalf("Failed to get baseline codec: %v", err)
	}

	width, height := 64, 64
	pixels := make([]byte, width*height)
	for i := range pixels {
		pixels[i] = byte(i % 256)
	}
	frame := codec.Frame{Pixels: pixels, Width: width, Height: height, Components: 1, BitDepth: 8}

	for _, tc := range []struct {
		name string
		opts codec.Options
	}{
		{"default", nil},
		{"accurate", &baseline.Options{Quality: 90, Method: common.DCTAccurate}},
		{"fast with restarts", &baseline.Options{Quality: 90, Method: common.DCTFast, RestartInterval: 3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			compressed, err := c.Encode(frame, tc.opts)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			t.Logf("Compressed size: %d bytes", len(compressed))

			result, err := c.Decode(compressed)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if result.Width != width || result.Height != height {
				t.Errorf("size = %dx%d, want %dx%d", result.Width, result.Height, width, height)
			}
			if result.Components != 1 {
				t.Errorf("Components = %d, want 1", result.Components)
			}
			if result.BitDepth != 8 {
				t.Errorf("BitDepth = %d, want 8", result.BitDepth)
			}
			if len(result.Pixels) != len(pixels) {
				t.Errorf("Data length = %d, want %d", len(result.Pixels), len(pixels))
			}
		})
	}
}

type foreignOptions struct{}

func (foreignOptions) Validate() error { return nil }

func TestBaselineCodecRejects(t *testing.T) {
	c, err := codec.Get("jpeg-baseline")
	if err != nil {
		t.Fatalf("Failed to get baseline codec: %v", err)
	}

	gray := codec.Frame{Pixels: make([]byte, 16*16), Width: 16, Height: 16, Components: 1}
	wide := gray
	wide.BitDepth = 12
	short := gray
	short.Pixels = short.Pixels[:100]

	tests := []struct {
		name    string
		frame   codec.Frame
		opts    codec.Options
		wantErr error
	}{
		{"foreign options", gray, foreignOptions{}, codec.ErrInvalidParameter},
		{"12-bit samples", wide, nil, codec.ErrUnsupportedFormat},
		{"short buffer", short, nil, codec.ErrInvalidFrame},
		{"quality out of range", gray, &baseline.Options{Quality: 0}, common.ErrInvalidQuality},
		{"unknown method", gray, &baseline.Options{Quality: 50, Method: common.DCTMethod(9)}, common.ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Encode(tt.frame, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Encode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
