package render

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/dastanaron/tabmarks/internal/models"
)

const (
	themeClassPrefix = "theme-"
	backgroundClass  = "has-background"
	defaultWidth     = 800
)

// Apply pushes the settings onto the page styling: container width, the
// theme class (replacing any other theme class) and the background image.
func Apply(s models.AppSettings, p *Page) {
	p.Settings = s
	p.ContainerStyle = ContainerStyle(s.Width)

	p.removeClassPrefix(themeClassPrefix)
	p.AddClass(themeClassPrefix + string(s.Theme))

	if s.Background.Enabled && s.Background.URL != "" {
		p.AddClass(backgroundClass)
		p.BackgroundImage = s.Background.URL
	} else {
		p.RemoveClass(backgroundClass)
		p.BackgroundImage = ""
	}
}

// ContainerStyle returns the inline style for the bookmark container
func ContainerStyle(width string) template.CSS {
	if width == models.WidthAuto {
		return "max-width: none; width: calc(100vw - 40px)"
	}
	return template.CSS(fmt.Sprintf("max-width: %dpx; width: 100%%", parseWidth(width)))
}

// parseWidth reads the leading digits of width, falling back to 800
func parseWidth(width string) int {
	end := 0
	for end < len(width) && width[end] >= '0' && width[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(width[:end])
	if err != nil || n == 0 {
		return defaultWidth
	}
	return n
}

// AddClass adds a body class once
func (p *Page) AddClass(class string) {
	if !p.HasClass(class) {
		p.BodyClasses = append(p.BodyClasses, class)
	}
}

// RemoveClass drops a body class
func (p *Page) RemoveClass(class string) {
	out := p.BodyClasses[:0]
	for _, c := range p.BodyClasses {
		if c != class {
			out = append(out, c)
		}
	}
	p.BodyClasses = out
}

// HasClass reports whether the body carries class
func (p *Page) HasClass(class string) bool {
	for _, c := range p.BodyClasses {
		if c == class {
			return true
		}
	}
	return false
}

func (p *Page) removeClassPrefix(prefix string) {
	out := p.BodyClasses[:0]
	for _, c := range p.BodyClasses {
		if !strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	p.BodyClasses = out
}
