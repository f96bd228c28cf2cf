package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// AnchorCenter returns a rectangle of size (widthPx,heightPx) centred in rect.
// The size is clamped to rect.
func AnchorCenter(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = min(max(widthPx, 0), rect.Dx())
	heightPx = min(max(heightPx, 0), rect.Dy())
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// FitSquare returns the largest square that fits into rect, centred.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := min(rect.Dx(), rect.Dy())
	return AnchorCenter(rect, size, size)
}

// Letterbox returns the largest rectangle with the aspect ratio of
// srcW x srcH that fits into rect, centred. Empty when either size is zero.
func Letterbox(rect image.Rectangle, srcW, srcH int) image.Rectangle {
	rect = Normalize(rect)
	if srcW <= 0 || srcH <= 0 || rect.Empty() {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	w := rect.Dx()
	h := w * srcH / srcW
	if h > rect.Dy() {
		h = rect.Dy()
		w = h * srcW / srcH
	}
	return AnchorCenter(rect, w, h)
}
