package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/poptex/pkg/landscape"
)

// createTestPalette returns a 256-entry palette where entry i is (i, 255-i, i/2).
func createTestPalette() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.RGBA{R: uint8(i), G: uint8(255 - i), B: uint8(i / 2), A: 0xff}
	}
	return pal
}

// createTestTexture returns a w x h texture where texel (x, y) is y*w+x.
func createTestTexture(w, h int) *landscape.Image {
	tex := landscape.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tex.Set(x, y, byte(y*w+x))
		}
	}
	return tex
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"bmp", FormatBMP, false},
		{"PNG", FormatPNG, false},
		{"jpg", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	pal := createTestPalette()
	img := Colorize(createTestTexture(8, 4), pal)

	for _, f := range []Format{FormatBMP, FormatPNG} {
		var buf bytes.Buffer
		if err := Encode(&buf, img, f); err != nil {
			t.Fatalf("%s: Encode failed: %v", f, err)
		}

		var decoded image.Image
		var err error
		if f == FormatBMP {
			decoded, err = bmp.Decode(&buf)
		} else {
			decoded, err = png.Decode(&buf)
		}
		if err != nil {
			t.Fatalf("%s: decode failed: %v", f, err)
		}

		if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 4 {
			t.Fatalf("%s: unexpected bounds %v", f, decoded.Bounds())
		}
		r, g, _, _ := decoded.At(3, 2).RGBA()
		if r>>8 != 19 || g>>8 != 236 {
			t.Errorf("%s: pixel (3,2) = (%d,%d), expected (19,236)", f, r>>8, g>>8)
		}
	}

	if err := Encode(&bytes.Buffer{}, img, Format("tga")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestColorizeSharesPixels(t *testing.T) {
	tex := createTestTexture(4, 4)
	img := Colorize(tex, createTestPalette())

	tex.Set(1, 1, 200)
	if img.ColorIndexAt(1, 1) != 200 {
		t.Errorf("expected shared buffer, got index %d", img.ColorIndexAt(1, 1))
	}
}

func TestScale(t *testing.T) {
	pal := createTestPalette()
	img := Colorize(createTestTexture(4, 4), pal)

	scaled := Scale(img, 8)
	if scaled.Bounds().Dx() != 32 || scaled.Bounds().Dy() != 32 {
		t.Fatalf("unexpected bounds %v", scaled.Bounds())
	}
	if _, ok := scaled.(*image.Paletted); !ok {
		t.Errorf("expected paletted result, got %T", scaled)
	}

	for _, tc := range []struct{ x, y, src int }{
		{0, 0, 0},
		{7, 7, 0},
		{8, 0, 1},
		{31, 31, 15},
		{17, 25, 3*4 + 2},
	} {
		want := pal[tc.src]
		if got := color.RGBAModel.Convert(scaled.At(tc.x, tc.y)); got != want {
			t.Errorf("pixel (%d,%d) = %v, expected %v", tc.x, tc.y, got, want)
		}
	}

	if Scale(img, 1) != image.Image(img) {
		t.Error("expected factor 1 to return the input")
	}
}

func TestScaleRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})

	scaled := Scale(src, 3)
	if _, ok := scaled.(*image.RGBA); !ok {
		t.Fatalf("expected RGBA result, got %T", scaled)
	}
	if r, _, _, _ := scaled.At(5, 2).RGBA(); r>>8 != 255 {
		t.Errorf("expected red at (5,2), got %d", r>>8)
	}
}

func TestShift(t *testing.T) {
	tex := createTestTexture(4, 3)

	out := Shift(tex, 1, -1)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			nx := (x + 1) % 4
			ny := (y - 1 + 3) % 3
			if out.At(nx, ny) != tex.At(x, y) {
				t.Fatalf("texel (%d,%d) not moved to (%d,%d)", x, y, nx, ny)
			}
		}
	}

	if Shift(tex, 0, 0) != tex {
		t.Error("expected zero shift to return the input")
	}
	if full := Shift(tex, 4, 6); !bytes.Equal(full.Pix, tex.Pix) {
		t.Error("expected a full-period shift to be the identity")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		dx, dy  int
		wantErr bool
	}{
		{"10;20", 10, 20, false},
		{"-3,4", -3, 4, false},
		{" 5 ; 6 ", 5, 6, false},
		{"7", 0, 0, true},
		{"a;b", 0, 0, true},
		{"1;2;3", 0, 0, true},
	}

	for _, tc := range tests {
		dx, dy, err := ParseMove(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMove(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && (dx != tc.dx || dy != tc.dy) {
			t.Errorf("ParseMove(%q) = (%d,%d), expected (%d,%d)", tc.in, dx, dy, tc.dx, tc.dy)
		}
	}
}

func TestDrawPalette(t *testing.T) {
	pal := createTestPalette()
	img := DrawPalette(pal, DefaultSwatchOptions())

	if img.Bounds().Dx() != 1024 || img.Bounds().Dy() != 1024 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	// 128 bands of 8 rows each.
	for _, tc := range []struct{ x, y, c int }{
		{0, 0, 0},
		{1023, 7, 0},
		{500, 8, 1},
		{10, 1023, 127},
	} {
		if got := img.RGBAAt(tc.x, tc.y); got != pal[tc.c] {
			t.Errorf("pixel (%d,%d) = %v, expected colour %d %v", tc.x, tc.y, got, tc.c, pal[tc.c])
		}
	}
}

func TestDrawPaletteLabels(t *testing.T) {
	pal := make(color.Palette, 4)
	for i := range pal {
		pal[i] = color.RGBA{A: 0xff}
	}
	img := DrawPalette(pal, SwatchOptions{Width: 64, Height: 64, Colors: 4, Labels: true})

	// Black bands get white digits somewhere in the left corner of each band.
	for c := 0; c < 4; c++ {
		found := false
		for y := c * 16; y < (c+1)*16 && !found; y++ {
			for x := 0; x < 16; x++ {
				if img.RGBAAt(x, y) == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
					found = true
					break
				}
			}
		}
		if !found {
			t.Errorf("band %d has no label", c)
		}
	}
}

func TestDrawPaletteShortPalette(t *testing.T) {
	pal := color.Palette{color.RGBA{R: 9, A: 0xff}}
	img := DrawPalette(pal, SwatchOptions{Width: 4, Height: 8, Colors: 2})

	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 9, A: 0xff}) {
		t.Errorf("unexpected first band %v", got)
	}
	if got := img.RGBAAt(0, 7); got != (color.RGBA{A: 0xff}) {
		t.Errorf("expected black for missing entry, got %v", got)
	}
}

func TestOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out := NewOutput(dir, FormatPNG)

	path, err := out.Write("land-001", Colorize(createTestTexture(4, 4), createTestPalette()))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != filepath.Join(dir, "land-001.png") {
		t.Errorf("unexpected path %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestOutputStream(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("", FormatBMP)
	out.SetStream(&buf)

	path, err := out.Write("water", Colorize(createTestTexture(4, 4), createTestPalette()))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != "-" {
		t.Errorf("expected stream marker, got %s", path)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("BM")) {
		t.Error("expected BMP signature on stream")
	}
}

func TestGridOverlay(t *testing.T) {
	img := Colorize(createTestTexture(8, 8), createTestPalette())
	red := color.RGBA{R: 255, A: 255}

	out := GridOverlay(img, 4, red)
	for _, p := range []image.Point{{0, 0}, {4, 1}, {7, 4}, {0, 7}} {
		if out.RGBAAt(p.X, p.Y) != red {
			t.Errorf("expected grid line at %v", p)
		}
	}
	if got := out.RGBAAt(1, 1); got != pal9() {
		t.Errorf("expected texel colour at (1,1), got %v", got)
	}
	if img.ColorIndexAt(0, 0) != 0 {
		t.Error("overlay must not modify the input")
	}
}

// pal9 is the test palette entry for texel (1,1) of an 8-wide texture.
func pal9() color.RGBA {
	return createTestPalette()[9].(color.RGBA)
}
