// Package plotter renders simulated series and fitted curves as SVG.
package plotter

import (
	"fmt"
	"math"
	"strings"

	"github.com/pumpsim-xyz/go-pumpsim/pump"
	"github.com/pumpsim-xyz/go-pumpsim/results"
)

// Series represents a single data series to plot.
type Series struct {
	X     []float64
	Y     []float64
	Label string
	Color string
}

// SVGPlotter creates SVG plots with customizable styling.
type SVGPlotter struct {
	Width      float64
	Height     float64
	Margin     map[string]float64
	PlotWidth  float64
	PlotHeight float64
	Title      string
	XLabel     string
	YLabel     string
	Series     []Series
}

// NewSVGPlotter creates a new SVG plotter with the given dimensions.
func NewSVGPlotter(width, height float64) *SVGPlotter {
	margin := map[string]float64{"top": 40, "right": 30, "bottom": 50, "left": 60}
	pw := width - margin["left"] - margin["right"]
	ph := height - margin["top"] - margin["bottom"]
	return &SVGPlotter{
		Width:      width,
		Height:     height,
		Margin:     margin,
		PlotWidth:  pw,
		PlotHeight: ph,
		XLabel:     "Time (s)",
		YLabel:     "Flow (m³/h)",
	}
}

// SetTitle sets the plot title.
func (p *SVGPlotter) SetTitle(t string) *SVGPlotter {
	p.Title = t
	return p
}

// SetXLabel sets the X-axis label.
func (p *SVGPlotter) SetXLabel(s string) *SVGPlotter {
	p.XLabel = s
	return p
}

// SetYLabel sets the Y-axis label.
func (p *SVGPlotter) SetYLabel(s string) *SVGPlotter {
	p.YLabel = s
	return p
}

// AddSeries adds a data series to the plot.
// If color is empty, a default color from a palette will be used.
func (p *SVGPlotter) AddSeries(x, y []float64, label, color string) *SVGPlotter {
	if color == "" {
		colors := []string{"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#a65628"}
		color = colors[len(p.Series)%len(colors)]
	}
	p.Series = append(p.Series, Series{X: x, Y: y, Label: label, Color: color})
	return p
}

// Render generates the SVG string.
func (p *SVGPlotter) Render() string {
	// Compute data ranges
	xmin := math.Inf(1)
	xmax := math.Inf(-1)
	ymin := math.Inf(1)
	ymax := math.Inf(-1)

	for _, s := range p.Series {
		for i := range s.X {
			x := s.X[i]
			y := s.Y[i]
			if x < xmin {
				xmin = x
			}
			if x > xmax {
				xmax = x
			}
			if y < ymin {
				ymin = y
			}
			if y > ymax {
				ymax = y
			}
		}
	}

	// Handle edge cases
	if math.IsInf(xmin, 1) || math.IsInf(xmax, -1) {
		xmin = 0
		xmax = 1
	}
	if math.IsInf(ymin, 1) || math.IsInf(ymax, -1) {
		ymin = 0
		ymax = 1
	}

	xrange := xmax - xmin
	if xrange == 0 {
		xrange = 1
	}
	yrange := ymax - ymin
	if yrange == 0 {
		yrange = 1
	}

	// Add padding
	xmin -= xrange * 0.05
	xmax += xrange * 0.05
	ymin -= yrange * 0.1
	ymax += yrange * 0.1

	// Scaling functions
	sx := func(x float64) float64 {
		return p.Margin["left"] + ((x-xmin)/(xmax-xmin))*p.PlotWidth
	}
	sy := func(y float64) float64 {
		return p.Margin["top"] + p.PlotHeight - ((y-ymin)/(ymax-ymin))*p.PlotHeight
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`,
		int(p.Width), int(p.Height)))

	// Background rectangle for visibility on dark themes
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="#f8f9fa" rx="8"/>`,
		int(p.Width), int(p.Height)))

	// Title
	if p.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="25" text-anchor="middle" font-family="Arial, sans-serif" font-size="16" font-weight="bold">%s</text>`,
			p.Width/2, escape(p.Title)))
	}

	// Axes
	sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="2"/>`,
		p.Margin["left"], p.Margin["top"], p.Margin["left"], p.Margin["top"]+p.PlotHeight))
	sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="2"/>`,
		p.Margin["left"], p.Margin["top"]+p.PlotHeight, p.Margin["left"]+p.PlotWidth, p.Margin["top"]+p.PlotHeight))

	// Axis labels
	sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="middle" font-family="Arial, sans-serif" font-size="12">%s</text>`,
		p.Margin["left"]+p.PlotWidth/2, p.Height-10, escape(p.XLabel)))
	sb.WriteString(fmt.Sprintf(`<text x="15" y="%f" text-anchor="middle" font-family="Arial, sans-serif" font-size="12" transform="rotate(-90, 15, %f)">%s</text>`,
		p.Margin["top"]+p.PlotHeight/2, p.Margin["top"]+p.PlotHeight/2, escape(p.YLabel)))

	// Grid and ticks
	numXTicks := 5
	numYTicks := 5
	for i := 0; i <= numXTicks; i++ {
		x := xmin + (xmax-xmin)*float64(i)/float64(numXTicks)
		px := sx(x)
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="1"/>`,
			px, p.Margin["top"]+p.PlotHeight, px, p.Margin["top"]+p.PlotHeight+5))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="middle" font-family="Arial, sans-serif" font-size="10">%.1f</text>`,
			px, p.Margin["top"]+p.PlotHeight+20, x))
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#ddd" stroke-width="0.5"/>`,
			px, p.Margin["top"], px, p.Margin["top"]+p.PlotHeight))
	}
	for i := 0; i <= numYTicks; i++ {
		y := ymin + (ymax-ymin)*float64(i)/float64(numYTicks)
		py := sy(y)
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="1"/>`,
			p.Margin["left"]-5, py, p.Margin["left"], py))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="end" font-family="Arial, sans-serif" font-size="10">%.1f</text>`,
			p.Margin["left"]-10, py+4, y))
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#ddd" stroke-width="0.5"/>`,
			p.Margin["left"], py, p.Margin["left"]+p.PlotWidth, py))
	}

	// Plot series
	for _, s := range p.Series {
		if len(s.X) == 0 {
			continue
		}
		path := strings.Builder{}
		for i := range s.X {
			px := sx(s.X[i])
			py := sy(s.Y[i])
			if i == 0 {
				path.WriteString(fmt.Sprintf("M%f,%f", px, py))
			} else {
				path.WriteString(fmt.Sprintf(" L%f,%f", px, py))
			}
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-width="2" fill="none"/>`,
			path.String(), s.Color))
	}

	// Legend
	hasLabel := false
	for _, s := range p.Series {
		if s.Label != "" {
			hasLabel = true
			break
		}
	}
	if hasLabel {
		legendY := p.Margin["top"] + 10
		for _, s := range p.Series {
			if s.Label == "" {
				continue
			}
			x1 := p.Width - p.Margin["right"] - 50
			x2 := p.Width - p.Margin["right"] - 30
			sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="%s" stroke-width="2"/>`,
				x1, legendY, x2, legendY, s.Color))
			sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" font-family="Arial, sans-serif" font-size="10">%s</text>`,
				x2+5, legendY+4, escape(s.Label)))
			legendY += 20
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// PlotCases renders the flow series of every case in a run side by side.
func PlotCases(res *results.Results, width, height float64, title string) string {
	p := NewSVGPlotter(width, height)
	if title != "" {
		p.SetTitle(title)
	}
	for _, c := range res.Cases {
		x := make([]float64, len(c.Series))
		y := make([]float64, len(c.Series))
		for i, s := range c.Series {
			x[i] = s.Time
			y[i] = s.Flow
		}
		p.AddSeries(x, y, c.Label, "")
	}
	return p.Render()
}

// PlotPowerCases renders the power series of every case in a run.
func PlotPowerCases(res *results.Results, width, height float64, title string) string {
	p := NewSVGPlotter(width, height).SetYLabel("Power (kW)")
	if title != "" {
		p.SetTitle(title)
	}
	for _, c := range res.Cases {
		x := make([]float64, len(c.Series))
		y := make([]float64, len(c.Series))
		for i, s := range c.Series {
			x[i] = s.Time
			y[i] = s.Power
		}
		p.AddSeries(x, y, c.Label, "")
	}
	return p.Render()
}

// PlotCurve renders a fitted Q-H curve with the measured points overlaid as
// a second series.
func PlotCurve(curve []pump.CurvePoint, points []pump.OperatingPoint, width, height float64, title string) string {
	p := NewSVGPlotter(width, height).SetXLabel("Flow (m³/h)").SetYLabel("Head (m)")
	if title != "" {
		p.SetTitle(title)
	}

	cx := make([]float64, len(curve))
	cy := make([]float64, len(curve))
	for i, c := range curve {
		cx[i] = c.Flow
		cy[i] = c.Head
	}
	p.AddSeries(cx, cy, "fitted", "")

	px := make([]float64, len(points))
	py := make([]float64, len(points))
	for i, pt := range points {
		px[i] = pt.Flow
		py[i] = pt.Head
	}
	p.AddSeries(px, py, "measured", "")

	return p.Render()
}

// escape sanitizes text nodes for SVG embedding.
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
