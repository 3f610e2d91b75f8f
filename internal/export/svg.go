package export

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dhkin/internal/kinematics"
)

// view maps XY world coordinates onto an SVG viewport with 10% padding.
type view struct {
	minX, minY     float64
	rangeX, rangeY float64
	width, height  int
}

func newView(points []mgl64.Vec3, width, height int) view {
	minX, maxX := points[0].X(), points[0].X()
	minY, maxY := points[0].Y(), points[0].Y()
	for _, p := range points {
		if p.X() < minX {
			minX = p.X()
		}
		if p.X() > maxX {
			maxX = p.X()
		}
		if p.Y() < minY {
			minY = p.Y()
		}
		if p.Y() > maxY {
			maxY = p.Y()
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1

	return view{minX: minX, minY: minY, rangeX: maxX - minX, rangeY: maxY - minY, width: width, height: height}
}

func (v view) project(p mgl64.Vec3) (float64, float64) {
	x := (p.X() - v.minX) / v.rangeX * float64(v.width)
	y := float64(v.height) - (p.Y()-v.minY)/v.rangeY*float64(v.height)
	return x, y
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

func polyline(sb *strings.Builder, v view, points []mgl64.Vec3, stroke string, strokeWidth float64) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" d="M`, stroke, strokeWidth))
	for i, p := range points {
		x, y := v.project(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

// PathToSVG draws the XY projection of a swept tip path.
func PathToSVG(points []mgl64.Vec3, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder
	header(&sb, width, height)
	polyline(&sb, newView(points, width, height), points, strokeColor, 1.5)
	sb.WriteString("</svg>")
	return sb.String()
}

// ChainToSVG draws the links of one configuration from the base through
// each frame origin, with an optional tip path behind them.
func ChainToSVG(frames []kinematics.Transform[float64], path []mgl64.Vec3, width, height int) string {
	if len(frames) == 0 {
		return ""
	}

	joints := make([]mgl64.Vec3, 0, len(frames)+1)
	joints = append(joints, mgl64.Vec3{})
	for _, f := range frames {
		joints = append(joints, kinematics.PoseOf(f).Position)
	}

	all := append(append([]mgl64.Vec3(nil), joints...), path...)
	v := newView(all, width, height)

	var sb strings.Builder
	header(&sb, width, height)
	if len(path) >= 2 {
		polyline(&sb, v, path, "#00ff00", 1.0)
	}
	polyline(&sb, v, joints, "#e0e0e0", 3.0)
	sb.WriteString("<g fill=\"#ff8800\">\n")
	for _, p := range joints {
		x, y := v.project(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4.0"/>
`, x, y))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
