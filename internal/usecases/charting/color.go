package charting

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA é uma cor no formato usado pelos descritores ("#36A2EB" ou "rgba(54, 162, 235, 0.7)")
type RGBA struct {
	R, G, B uint8
	A       float64
}

func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// ParseColor aceita #RGB, #RRGGBB, rgb(...) e rgba(...)
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return RGBA{}, fmt.Errorf("cor inválida %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return RGBA{}, fmt.Errorf("cor inválida %q: %w", s, err)
		}
		return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, nil
	}

	var body string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return RGBA{}, fmt.Errorf("cor inválida %q", s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, fmt.Errorf("cor inválida %q", s)
	}

	channels := make([]uint8, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return RGBA{}, fmt.Errorf("cor inválida %q", s)
		}
		channels[i] = uint8(v)
	}

	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return RGBA{}, fmt.Errorf("cor inválida %q", s)
		}
		alpha = a
	}

	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}
