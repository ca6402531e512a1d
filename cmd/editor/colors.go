package main

import (
	"image/color"
	"strings"
)

// gameColors maps the game's curses color names onto RGBA for the fallback
// renderer. Prefixes like light_/dark_ fall back to the base color when the
// exact name is unknown.
var gameColors = map[string]color.RGBA{
	"black":      {20, 20, 20, 255},
	"red":        {200, 50, 50, 255},
	"green":      {60, 160, 60, 255},
	"brown":      {140, 100, 50, 255},
	"yellow":     {210, 200, 70, 255},
	"blue":       {70, 90, 200, 255},
	"magenta":    {170, 70, 170, 255},
	"pink":       {220, 130, 170, 255},
	"cyan":       {70, 170, 180, 255},
	"white":      {220, 220, 220, 255},
	"gray":       {130, 130, 130, 255},
	"light_gray": {170, 170, 170, 255},
	"dark_gray":  {90, 90, 90, 255},
}

func colorFor(name string) color.RGBA {
	if c, ok := gameColors[name]; ok {
		return c
	}
	for _, prefix := range []string{"light_", "dark_", "i_", "h_"} {
		if base, ok := strings.CutPrefix(name, prefix); ok {
			if c, ok := gameColors[base]; ok {
				return c
			}
		}
	}
	return color.RGBA{110, 110, 110, 255}
}
