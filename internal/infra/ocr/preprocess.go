package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	// Receipt photos arrive as JPEG or PNG.
	_ "image/jpeg"

	"golang.org/x/image/draw"

	"gachigage/internal/errors"
)

const defaultMaxWidth = 1280

// preprocess normalizes a receipt photo before it is sent to the OCR engine:
// grayscale with the contrast stretched over the observed luminance range,
// optional binarization, and a downscale when the photo is wider than
// maxWidth. Receipt text is black on white, so throwing away color and
// midtones measurably improves recognition of the cheap thermal prints.
func preprocess(data []byte, maxWidth, binarizeThreshold int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode receipt image")
	}

	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	src = downscale(src, maxWidth)

	gray := toContrastStretchedGray(src)
	if binarizeThreshold > 0 {
		binarize(gray, uint8(binarizeThreshold))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, errors.Wrap(err, "failed to encode preprocessed image")
	}

	return buf.Bytes(), nil
}

// downscale resizes the image to maxWidth, keeping the aspect ratio. Images
// already narrow enough pass through untouched.
func downscale(src image.Image, maxWidth int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return src
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	return dst
}

// toContrastStretchedGray converts to grayscale and linearly stretches the
// luminance so the darkest pixel maps to black and the brightest to white.
func toContrastStretchedGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)

	minY, maxY := uint8(255), uint8(0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			gray.SetGray(x, y, g)
			if g.Y < minY {
				minY = g.Y
			}
			if g.Y > maxY {
				maxY = g.Y
			}
		}
	}

	if maxY <= minY {
		return gray
	}

	spread := int(maxY) - int(minY)
	for i, v := range gray.Pix {
		gray.Pix[i] = uint8((int(v) - int(minY)) * 255 / spread)
	}

	return gray
}

// binarize clamps every pixel to pure black or white around the threshold.
func binarize(gray *image.Gray, threshold uint8) {
	for i, v := range gray.Pix {
		if v >= threshold {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
}
