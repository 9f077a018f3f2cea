package raster

// DrawPixel writes color at (x, y). Writes outside the buffer are dropped.
func (c *Context) DrawPixel(x, y int, color uint32) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.Color[y*c.Width+x] = color
	}
}

// DrawLine draws an integer segment without touching the depth buffer.
//
// Vertical and horizontal segments stop one pixel short of (x2, y2); all other
// segments include both end points.
func (c *Context) DrawLine(x1, y1, x2, y2 int, color uint32) {
	switch {
	case x1 == x2 && y1 == y2:
		c.DrawPixel(x1, y1, color)

	case x1 == x2:
		inc := 1
		if y1 > y2 {
			inc = -1
		}
		for y := y1; y != y2; y += inc {
			c.DrawPixel(x1, y, color)
		}

	case y1 == y2:
		inc := 1
		if x1 > x2 {
			inc = -1
		}
		for x := x1; x != x2; x += inc {
			c.DrawPixel(x, y1, color)
		}

	default:
		dx, dy := absInt(x2-x1), absInt(y2-y1)
		if dx > dy {
			if x2 < x1 {
				x1, y1, x2, y2 = x2, y2, x1, y1
			}
			inc := 1
			if y1 > y2 {
				inc = -1
			}
			rem := 0
			for x, y := x1, y1; x <= x2; x++ {
				c.DrawPixel(x, y, color)
				rem += dy
				if rem >= dx {
					rem -= dx
					y += inc
					c.DrawPixel(x, y, color)
				}
			}
		} else {
			if y2 < y1 {
				x1, y1, x2, y2 = x2, y2, x1, y1
			}
			inc := 1
			if x1 > x2 {
				inc = -1
			}
			rem := 0
			for x, y := x1, y1; y <= y2; y++ {
				c.DrawPixel(x, y, color)
				rem += dx
				if rem >= dy {
					rem -= dy
					x += inc
					c.DrawPixel(x, y, color)
				}
			}
		}
		c.DrawPixel(x2, y2, color)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
