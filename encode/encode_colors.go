package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	ParenColor ColorAttr = iota
	KeyColor
	ValueColor
	MultiLineValueColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			ParenColor:          color.RGB(196, 128, 128).SprintfFunc(),
			KeyColor:            color.RGB(128, 168, 196).SprintfFunc(),
			ValueColor:          color.RGB(8, 196, 16).SprintfFunc(),
			MultiLineValueColor: color.RGB(198, 198, 46).SprintfFunc(),
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
