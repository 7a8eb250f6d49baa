// Package preprocess converts images into the float tensors vision
// models expect. It covers the common classification pipeline: resize,
// normalize with per-channel mean and standard deviation, and lay the
// result out as NCHW or NHWC.
package preprocess

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Layout selects the memory order of the produced tensor.
type Layout int

const (
	// NCHW is planar channel-first order, the OpenVINO default for
	// converted vision models.
	NCHW Layout = iota
	// NHWC is interleaved channel-last order.
	NHWC
)

// Options controls the image-to-tensor conversion.
type Options struct {
	// Width and Height of the model input. The image is resized when
	// its bounds differ.
	Width  int
	Height int

	// Mean and Std are per-channel (R, G, B) normalization terms:
	// out = (pixel/255 - Mean) / Std. A zero Std is treated as 1.
	Mean [3]float32
	Std  [3]float32

	// Layout of the output tensor. Defaults to NCHW.
	Layout Layout
}

// ImageNet is the normalization used by most torchvision-trained models.
var ImageNet = Options{
	Mean: [3]float32{0.485, 0.456, 0.406},
	Std:  [3]float32{0.229, 0.224, 0.225},
}

// Resize scales img to w by h using bilinear interpolation. The input
// is returned unchanged when it already has the requested size.
func Resize(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ToTensor resizes and normalizes img according to opts and returns the
// flat float32 tensor data along with its shape (1, C, H, W for NCHW,
// 1, H, W, C for NHWC).
func ToTensor(img image.Image, opts Options) ([]float32, []int64, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, nil, fmt.Errorf("invalid target size %dx%d", opts.Width, opts.Height)
	}

	std := opts.Std
	for i := range std {
		if std[i] == 0 {
			std[i] = 1
		}
	}

	resized := Resize(img, opts.Width, opts.Height)
	rgba, ok := resized.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.Draw(rgba, rgba.Bounds(), resized, resized.Bounds().Min, draw.Src)
	}

	w, h := opts.Width, opts.Height
	data := make([]float32, 3*w*h)
	plane := w * h

	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < w; x++ {
			px := row[x*4:]
			for c := 0; c < 3; c++ {
				v := (float32(px[c])/255 - opts.Mean[c]) / std[c]
				switch opts.Layout {
				case NHWC:
					data[(y*w+x)*3+c] = v
				default:
					data[c*plane+y*w+x] = v
				}
			}
		}
	}

	var shape []int64
	switch opts.Layout {
	case NHWC:
		shape = []int64{1, int64(h), int64(w), 3}
	default:
		shape = []int64{1, 3, int64(h), int64(w)}
	}
	return data, shape, nil
}
