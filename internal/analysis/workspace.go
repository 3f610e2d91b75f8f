package analysis

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Extents is the axis-aligned bounding box of a set of tip positions.
type Extents struct {
	Min, Max mgl64.Vec3
}

// Size returns Max - Min.
func (e Extents) Size() mgl64.Vec3 {
	return e.Max.Sub(e.Min)
}

// WorkspaceExtents returns the bounding box of the swept positions. It is
// the zero box for no samples.
func WorkspaceExtents(samples []Sample) Extents {
	if len(samples) == 0 {
		return Extents{}
	}
	ext := Extents{Min: samples[0].Position, Max: samples[0].Position}
	for _, s := range samples[1:] {
		for k := 0; k < 3; k++ {
			ext.Min[k] = math.Min(ext.Min[k], s.Position[k])
			ext.Max[k] = math.Max(ext.Max[k], s.Position[k])
		}
	}
	return ext
}

// Reach returns the largest distance from the base to a swept position.
func Reach(samples []Sample) float64 {
	r := 0.0
	for _, s := range samples {
		r = math.Max(r, s.Position.Len())
	}
	return r
}

// WorkspaceToASCII scatters the XY projection of the samples onto a
// width x height character grid, with the base axes drawn when visible.
func WorkspaceToASCII(samples []Sample, width, height int) string {
	if len(samples) == 0 || width < 2 || height < 2 {
		return ""
	}

	ext := WorkspaceExtents(samples)
	minX, maxX := ext.Min.X(), ext.Max.X()
	minY, maxY := ext.Min.Y(), ext.Max.Y()

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
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, s := range samples {
		col := int((s.Position.X() - minX) / rangeX * float64(width-1))
		row := height - 1 - int((s.Position.Y()-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
