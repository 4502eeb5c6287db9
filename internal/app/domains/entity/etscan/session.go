package etscan

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
)

// State 扫码会话状态
type State string

const (
	StateIdle      State = "IDLE"
	StateAcquiring State = "ACQUIRING"
	StateActive    State = "ACTIVE"
)

// StopReason 会话回到 Idle 的原因
type StopReason string

const (
	StopReasonNone    StopReason = ""
	StopReasonDecoded StopReason = "DECODED"
	StopReasonUser    StopReason = "USER"
	StopReasonError   StopReason = "ERROR"
)

// DefaultMaxFramePixels 单帧像素上限（4096x4096）
const DefaultMaxFramePixels = 4096 * 4096

// Snapshot 扫码会话状态快照
type Snapshot struct {
	ID         string
	State      State
	StopReason StopReason
	Processing bool
	Payload    string
	Outcome    *etresult.Outcome
	Err        error
	StartedAt  time.Time
	StoppedAt  time.Time
}

var (
	ErrInvalidFrame  = errors.New("frame dimensions do not match pixel buffer")
	ErrFrameTooLarge = errors.New("frame dimensions exceed pixel limit")
)

// Frame 一帧图像的 RGBA 像素缓冲
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// Validate 检查像素缓冲长度
func (f *Frame) Validate() error {
	if f == nil || f.Width <= 0 || f.Height <= 0 || len(f.Pix) != f.Width*f.Height*4 {
		return ErrInvalidFrame
	}
	return nil
}

// Image 将像素缓冲包装为 image.RGBA（不拷贝）
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// FrameFromImage 把任意图像绘制到 RGBA 缓冲
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Frame{Width: b.Dx(), Height: b.Dy(), Pix: rgba.Pix}
}

// DecodeFrame 解码 PNG/JPEG 图像为帧，先读头部尺寸，超过 maxPixels 不解码像素
func DecodeFrame(r io.Reader, maxPixels int) (*Frame, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxFramePixels
	}

	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrInvalidFrame
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, ErrFrameTooLarge
	}

	// 头部已被读走，拼回剩余数据
	img, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, err
	}
	return FrameFromImage(img), nil
}
