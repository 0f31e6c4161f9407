package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/mudra/internal/detector"
	"gocv.io/x/gocv"
)

var (
	boneColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	jointColor = color.RGBA{R: 255, A: 255}
	tipColor   = color.RGBA{G: 255, B: 255, A: 255}
	textColor  = color.RGBA{R: 255, G: 255, A: 255}
)

// DrawLandmarks renders each hand's skeleton onto img.
func DrawLandmarks(img *gocv.Mat, hands []detector.Snapshot) {
	frame := image.Pt(img.Cols(), img.Rows())

	for i := range hands {
		hand := &hands[i]

		for _, c := range detector.Connections {
			gocv.Line(img, hand.Pixel(c[0], frame), hand.Pixel(c[1], frame), boneColor, 2)
		}

		for j := 0; j < detector.NumLandmarks; j++ {
			gocv.Circle(img, hand.Pixel(j, frame), 4, jointColor, -1)
		}

		// highlight the index tip that drives strokes and the pointer
		gocv.Circle(img, hand.Pixel(detector.IndexTip, frame), 7, tipColor, 2)
	}
}

// DrawStatus writes a one-line mode summary in the top-left corner.
func DrawStatus(img *gocv.Mat, hands int, modes string) {
	text := fmt.Sprintf("Hands: %d  %s", hands, modes)
	gocv.PutText(img, text, image.Pt(10, 24), gocv.FontHersheySimplex, 0.6, textColor, 2)
}
