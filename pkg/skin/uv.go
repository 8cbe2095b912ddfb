package skin

// FaceUV is a texture rectangle in texels on the 64x64 skin grid.
type FaceUV struct {
	X, Y, W, H int
}

// BoxUV holds the per-face texture rects of one box segment, using the
// standard box unwrap: top and bottom above, then right/front/left/back
// in a strip.
type BoxUV struct {
	Top    FaceUV
	Bottom FaceUV
	Right  FaceUV
	Front  FaceUV
	Left   FaceUV
	Back   FaceUV
}

// BoxUVAt lays out the standard unwrap for a w*h*d box whose unwrap
// origin is at (u,v).
func BoxUVAt(u, v, w, h, d int) BoxUV {
	return BoxUV{
		Top:    FaceUV{u + d, v, w, d},
		Bottom: FaceUV{u + d + w, v, w, d},
		Right:  FaceUV{u, v + d, d, h},
		Front:  FaceUV{u + d, v + d, w, h},
		Left:   FaceUV{u + d + w, v + d, d, h},
		Back:   FaceUV{u + d + w + d, v + d, w, h},
	}
}

// BoxUVSliceY returns the unwrap for a horizontal slab of the w*h*d box
// at (u,v): the slab starts yOff texels below the box top and is yLen
// tall. Side and front/back faces become the matching horizontal strips;
// the top face is kept only for the top slab and the bottom face only
// for the bottom slab (zero-sized otherwise).
func BoxUVSliceY(u, v, w, h, d, yOff, yLen int) BoxUV {
	full := BoxUVAt(u, v, w, h, d)
	uv := BoxUV{
		Right: FaceUV{full.Right.X, full.Right.Y + yOff, d, yLen},
		Front: FaceUV{full.Front.X, full.Front.Y + yOff, w, yLen},
		Left:  FaceUV{full.Left.X, full.Left.Y + yOff, d, yLen},
		Back:  FaceUV{full.Back.X, full.Back.Y + yOff, w, yLen},
	}
	if yOff == 0 {
		uv.Top = full.Top
	}
	if yOff+yLen == h {
		uv.Bottom = full.Bottom
	}
	return uv
}
