package baseline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"testing"

	"github.com/cocosip/go-jpeg-dct/jpeg/common"
)

// pixelsOf flattens img to grayscale or interleaved RGB bytes
func pixelsOf(img image.Image, components int) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*components)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if components == 1 {
				out = append(out, byte(r>>8))
				continue
			}
			out = append(out, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return out
}

func imageOf(pixels []byte, width, height, components int) image.Image {
	if components == 1 {
		img := image.NewGray(image.Rect(0, 0, width, height))
		copy(img.Pix, pixels)
		return img
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		copy(img.Pix[i*4:], pixels[i*3:i*3+3])
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

func meanAbsDiff(a, b []byte) float64 {
	var sum int
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float64(sum) / float64(len(a))
}

// Streams from image/jpeg use 2x2 luma sampling for color, which exercises
// the interleaved MCU layout and chroma upsampling
func TestDecodeStandardLibraryStream(t *testing.T) {
	tests := []struct {
		width, height, components int
		maxDiff                   int
	}{
		{64, 48, 1, 8},
		{37, 29, 1, 8},
		{64, 48, 3, 12},
		{37, 29, 3, 12},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%dx%d", tt.width, tt.height, tt.components), func(t *testing.T) {
			src := imageOf(naturalImage(tt.width, tt.height, tt.components), tt.width, tt.height, tt.components)

			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 90}); err != nil {
				t.Fatalf("image/jpeg Encode failed: %v", err)
			}

			ref, err := jpeg.Decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("image/jpeg Decode failed: %v", err)
			}
			want := pixelsOf(ref, tt.components)

			got, w, h, c, err := Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if w != tt.width || h != tt.height || c != tt.components {
				t.Fatalf("Decode returned %dx%dx%d, want %dx%dx%d", w, h, c, tt.width, tt.height, tt.components)
			}

			maxDiff, mean := maxAbsDiff(want, got), meanAbsDiff(want, got)
			t.Logf("against image/jpeg: max diff %d, mean %.3f", maxDiff, mean)
			if maxDiff > tt.maxDiff || mean > 1.5 {
				t.Errorf("decoded pixels differ from image/jpeg: max %d, mean %.3f", maxDiff, mean)
			}
		})
	}
}

func TestEncodedStreamReadableByStandardLibrary(t *testing.T) {
	for _, components := range []int{1, 3} {
		for _, method := range methods {
			for _, restart := range []int{0, 3} {
				name := fmt.Sprintf("%d/%s/restart_%d", components, method, restart)
				t.Run(name, func(t *testing.T) {
					width, height := 53, 35
					pixels := naturalImage(width, height, components)

					data, err := EncodeWithOptions(pixels, width, height, components,
						Options{Quality: 90, Method: method, RestartInterval: restart})
					if err != nil {
						t.Fatalf("Encode failed: %v", err)
					}

					ref, err := jpeg.Decode(bytes.NewReader(data))
					if err != nil {
						t.Fatalf("image/jpeg Decode failed: %v", err)
					}
					if b := ref.Bounds(); b.Dx() != width || b.Dy() != height {
						t.Fatalf("image/jpeg decoded %v, want %dx%d", b, width, height)
					}

					got, _, _, _, err := Decode(data)
					if err != nil {
						t.Fatalf("Decode failed: %v", err)
					}
					want := pixelsOf(ref, components)

					maxDiff, mean := maxAbsDiff(want, got), meanAbsDiff(want, got)
					t.Logf("against image/jpeg: max diff %d, mean %.3f", maxDiff, mean)
					if maxDiff > 12 || mean > 1.5 {
						t.Errorf("decoded pixels differ from image/jpeg: max %d, mean %.3f", maxDiff, mean)
					}
				})
			}
		}
	}
}

// basisImage tiles the sign patterns of all 64 DCT basis functions twice:
// the left 64x64 half swings over the full 8-bit range, the right half over
// 28..220
func basisImage() (pixels []byte, width, height int) {
	width, height = 128, 64
	pixels = make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u, v := (x/8)%8, y/8
			c := math.Cos(float64(2*(x%8)+1)*float64(u)*math.Pi/16) *
				math.Cos(float64(2*(y%8)+1)*float64(v)*math.Pi/16)
			lo, hi := byte(0), byte(255)
			if x >= 64 {
				lo, hi = 28, 220
			}
			if c >= 0 {
				pixels[y*width+x] = hi
			} else {
				pixels[y*width+x] = lo
			}
		}
	}
	return pixels, width, height
}

// High-contrast blocks must reach the entropy coder intact under both
// transforms; image/jpeg's decoder checks the coded coefficients
func TestEncodeBasisPatterns(t *testing.T) {
	pixels, width, height := basisImage()

	for _, tt := range []struct {
		quality int
		maxDiff int
	}{
		{100, 2},
		{90, 12},
	} {
		encoded := make(map[common.DCTMethod][]byte)
		for _, method := range methods {
			t.Run(fmt.Sprintf("q%d/%s", tt.quality, method), func(t *testing.T) {
				data, err := EncodeWithOptions(pixels, width, height, 1, Options{Quality: tt.quality, Method: method})
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				encoded[method] = data

				ref, err := jpeg.Decode(bytes.NewReader(data))
				if err != nil {
					t.Fatalf("image/jpeg Decode failed: %v", err)
				}
				maxDiff := maxAbsDiff(pixels, pixelsOf(ref, 1))
				t.Logf("%d bytes, image/jpeg max diff %d", len(data), maxDiff)
				if maxDiff > tt.maxDiff {
					t.Errorf("image/jpeg max diff %d, want <= %d", maxDiff, tt.maxDiff)
				}

				if _, _, _, _, err := Decode(data); err != nil {
					t.Errorf("Decode failed: %v", err)
				}
			})
		}

		// Above quality 95 the fast method codes with the accurate transform
		if tt.quality > fastMaxQuality && !bytes.Equal(encoded[common.DCTFast], encoded[common.DCTAccurate]) {
			t.Errorf("quality %d: fast and accurate streams differ", tt.quality)
		}
	}
}
