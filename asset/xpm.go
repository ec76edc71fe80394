package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"magenta": {255, 0, 255, 255},
	"cyan":    {0, 255, 255, 255},
	"orange":  {255, 165, 0, 255},
	"gray":    {190, 190, 190, 255},
	"grey":    {190, 190, 190, 255},
}

// isXPM reports whether data starts with the XPM magic comment
func isXPM(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("/* XPM */"))
}

// xpmStrings extracts the quoted strings of an XPM C source file
func xpmStrings(data []byte) []string {
	var out []string
	for {
		i := bytes.IndexByte(data, '"')
		if i < 0 {
			return out
		}
		data = data[i+1:]
		j := bytes.IndexByte(data, '"')
		if j < 0 {
			return out
		}
		out = append(out, string(data[:j]))
		data = data[j+1:]
	}
}

// DecodeXPM parses XPM3 data given as its string array: the values line, the colors, then the rows
// Only the "c" color key is used; "None" is transparent
func DecodeXPM(lines []string, name string) (*image.NRGBA, error) {
	if len(lines) == 0 {
		return nil, newLoadError(InvalidArgs, name, nil)
	}

	var w, h, ncolors, cpp int
	if _, err := fmt.Sscan(lines[0], &w, &h, &ncolors, &cpp); err != nil {
		return nil, newLoadError(InvalidFile, name, fmt.Errorf("values line %q: %w", lines[0], err))
	}
	if w <= 0 || h <= 0 || ncolors <= 0 || cpp <= 0 {
		return nil, newLoadError(InvalidSize, name, fmt.Errorf("values line %q", lines[0]))
	}
	if len(lines) < 1+ncolors+h {
		return nil, newLoadError(InvalidFile, name, fmt.Errorf("want %d lines, got %d", 1+ncolors+h, len(lines)))
	}

	palette := make(map[string]color.NRGBA, ncolors)
	for _, line := range lines[1 : 1+ncolors] {
		if len(line) < cpp {
			return nil, newLoadError(InvalidFile, name, fmt.Errorf("color line %q", line))
		}
		c, err := parseColorSpec(line[cpp:])
		if err != nil {
			return nil, newLoadError(ColorFailed, name, fmt.Errorf("color line %q: %w", line, err))
		}
		palette[line[:cpp]] = c
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y, row := range lines[1+ncolors : 1+ncolors+h] {
		if len(row) != w*cpp {
			return nil, newLoadError(InvalidSize, name, fmt.Errorf("row %d has %d bytes, want %d", y, len(row), w*cpp))
		}
		for x := 0; x < w; x++ {
			c, ok := palette[row[x*cpp:(x+1)*cpp]]
			if !ok {
				return nil, newLoadError(ColorError, name, fmt.Errorf("row %d: undefined pixel %q", y, row[x*cpp:(x+1)*cpp]))
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// parseColorSpec finds the "c" key among the key/value pairs of a color line
func parseColorSpec(spec string) (color.NRGBA, error) {
	fields := strings.Fields(spec)
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i] != "c" {
			continue
		}
		return parseColor(fields[i+1])
	}
	return color.NRGBA{}, fmt.Errorf("no color key")
}

func parseColor(v string) (color.NRGBA, error) {
	if strings.EqualFold(v, "none") {
		return color.NRGBA{}, nil
	}
	if c, ok := namedColors[strings.ToLower(v)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(v, "#") {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", v)
	}
	hex := v[1:]
	if len(hex)%3 != 0 || len(hex) == 0 || len(hex) > 12 {
		return color.NRGBA{}, fmt.Errorf("bad color %q", v)
	}
	n := len(hex) / 3
	var ch [3]uint8
	for i := range ch {
		val, err := strconv.ParseUint(hex[i*n:(i+1)*n], 16, 16)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("bad color %q: %w", v, err)
		}
		// Scale to 8 bits from the field width
		maxv := uint64(1)<<(4*uint(n)) - 1
		ch[i] = uint8(val * 255 / maxv)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}, nil
}
