package render

// Viewport is the window of the canvas a display shows, in canvas pixels.
type Viewport struct {
	CamX, CamY       int // top-left canvas coordinate
	ViewW, ViewH     int // viewport size
	OffsetX, OffsetY int // screen margin when the canvas is smaller than the view
}

// NewViewport calculates the camera position centered on the focus point,
// clamped to the canvas edges. A canvas smaller than the view is centered.
func NewViewport(focusX, focusY, viewW, viewH, canvasW, canvasH int) Viewport {
	camX := focusX - viewW/2
	camY := focusY - viewH/2
	var offX, offY int

	// Clamp to canvas edges
	if camX < 0 {
		camX = 0
	}
	if camY < 0 {
		camY = 0
	}
	if camX+viewW > canvasW {
		camX = canvasW - viewW
		if camX < 0 {
			camX = 0
			offX = (viewW - canvasW) / 2
		}
	}
	if camY+viewH > canvasH {
		camY = canvasH - viewH
		if camY < 0 {
			camY = 0
			offY = (viewH - canvasH) / 2
		}
	}

	return Viewport{
		CamX:    camX,
		CamY:    camY,
		ViewW:   viewW,
		ViewH:   viewH,
		OffsetX: offX,
		OffsetY: offY,
	}
}
