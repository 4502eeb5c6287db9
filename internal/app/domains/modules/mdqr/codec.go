package mdqr

import (
	"errors"
	"image/color"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	goqrcode "github.com/skip2/go-qrcode"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
)

// Decoder 二维码解码器：命中返回 (text, true, nil)，未识别返回 ("", false, nil)
type Decoder interface {
	Decode(frame *etscan.Frame) (string, bool, error)
}

// Encoder 二维码编码器，返回 PNG
type Encoder interface {
	Encode(content string) ([]byte, error)
}

// ZXingDecoder 基于 gozxing 的解码器
type ZXingDecoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// NewZXingDecoder 创建解码器
func NewZXingDecoder() *ZXingDecoder {
	return &ZXingDecoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode 解码一帧图像
func (d *ZXingDecoder) Decode(frame *etscan.Frame) (string, bool, error) {
	if err := frame.Validate(); err != nil {
		return "", false, errorx.External("Unable to process QR code", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(frame.Image())
	if err != nil {
		return "", false, errorx.External("Unable to process QR code", err)
	}

	res, err := zxingqr.NewQRCodeReader().Decode(bmp, d.hints)
	if err != nil {
		var notFound gozxing.ReaderException
		if errors.As(err, &notFound) {
			return "", false, nil
		}
		return "", false, errorx.External("Unable to process QR code", err)
	}
	return res.GetText(), true, nil
}

// 上传页二维码配色
var (
	foreground = color.RGBA{R: 0x1E, G: 0x40, B: 0xAF, A: 0xFF}
	background = color.White
)

// PNGEncoder 基于 go-qrcode 的编码器
type PNGEncoder struct {
	size int
}

// NewPNGEncoder 创建编码器，size 为图片边长（像素）
func NewPNGEncoder(size int) *PNGEncoder {
	return &PNGEncoder{size: size}
}

// Encode 生成二维码 PNG
func (e *PNGEncoder) Encode(content string) ([]byte, error) {
	q, err := goqrcode.New(content, goqrcode.Medium)
	if err != nil {
		return nil, errorx.External("Failed to generate QR code", err)
	}
	q.ForegroundColor = foreground
	q.BackgroundColor = background

	png, err := q.PNG(e.size)
	if err != nil {
		return nil, errorx.External("Failed to generate QR code", err)
	}
	return png, nil
}
