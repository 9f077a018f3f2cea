package raster

// SampleTexture performs nearest-texel lookup. u and v are scaled by the last
// texel index and rounded; results outside the texture clamp to the edge, so
// u or v of exactly -1 or 1 land on the first or last texel.
func SampleTexture(tex *Texture, u, v float32) uint32 {
	if !tex.valid() {
		return 0
	}
	x := clampInt(int(u*float32(tex.Width-1)+0.5), 0, tex.Width-1)
	y := clampInt(int(v*float32(tex.Height-1)+0.5), 0, tex.Height-1)
	return tex.texels[y*tex.Width+x]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// floatToByte maps [0,1] to [0,255] with rounding and clamping.
func floatToByte(f float32) uint8 {
	return uint8(clampInt(int(f*255+0.5), 0, 255))
}

// packFloatColor packs an interpolated color. Alpha is always forced opaque.
func packFloatColor(r, g, b float32) uint32 {
	return PackRGBA(floatToByte(r), floatToByte(g), floatToByte(b), 0xff)
}

// modulate multiplies each texel channel by the matching shaded channel.
func modulate(texel uint32, r, g, b, a float32) uint32 {
	tr, tg, tb, ta := UnpackRGBA(texel)
	return PackRGBA(
		uint8(clampInt(int(float32(tr)*r+0.5), 0, 255)),
		uint8(clampInt(int(float32(tg)*g+0.5), 0, 255)),
		uint8(clampInt(int(float32(tb)*b+0.5), 0, 255)),
		uint8(clampInt(int(float32(ta)*a+0.5), 0, 255)),
	)
}
