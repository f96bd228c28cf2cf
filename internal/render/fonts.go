package render

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}

// Fonts hands out faces of one typeface at any pixel size. Faces are cached
// per size since text sizes are fixed per layout.
type Fonts struct {
	otf   *opentype.Font
	ttf   *truetype.Font
	faces map[float64]font.Face
	log   logger
}

// LoadFonts parses data as OpenType, then as TrueType. When neither works
// every face is basicfont.
func LoadFonts(data []byte, l logger) *Fonts {
	if l == nil {
		l = nopLogger{}
	}
	f := &Fonts{faces: make(map[float64]font.Face), log: l}

	otf, err := opentype.Parse(data)
	if err == nil {
		f.otf = otf
		l.Infof("font", "loaded OpenType font")
		return f
	}
	l.Errorf("font", "opentype parse failed: %v", err)

	tt, terr := truetype.Parse(data)
	if terr == nil {
		f.ttf = tt
		l.Infof("font", "loaded TrueType font")
		return f
	}
	l.Errorf("font", "truetype parse failed, using basicfont: %v", terr)
	return f
}

// Face returns a face whose em size is size pixels.
func (f *Fonts) Face(size float64) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := f.newFace(size)
	f.faces[size] = face
	return face
}

func (f *Fonts) newFace(size float64) font.Face {
	// DPI 72 makes one point one pixel.
	if f.otf != nil {
		face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			return face
		}
		f.log.Errorf("font", "face at %.1fpx failed, using basicfont: %v", size, err)
		return basicfont.Face7x13
	}
	if f.ttf != nil {
		return truetype.NewFace(f.ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	return basicfont.Face7x13
}

// Close releases cached faces.
func (f *Fonts) Close() error {
	for size, face := range f.faces {
		_ = face.Close()
		delete(f.faces, size)
	}
	return nil
}
