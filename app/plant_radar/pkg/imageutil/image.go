// Package imageutil 校验上传的图片并读取基础信息。
package imageutil

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	// 注册解码器，image.DecodeConfig 依赖它们识别格式
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage     = errors.New("not an image")
	ErrCorruptImage = errors.New("corrupt image")
)

// Info 图片基础信息。Width/Height 为 0 表示格式可识别但无法解析尺寸（如 HEIC）。
type Info struct {
	MIME   string
	Ext    string
	Width  int
	Height int
}

// Inspect 通过魔数判断是否为图片，并尝试读取尺寸
func Inspect(b []byte) (Info, error) {
	if !filetype.IsImage(b) {
		return Info{}, ErrNotImage
	}
	kind, err := filetype.Match(b)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	info := Info{MIME: kind.MIME.Value, Ext: kind.Extension}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	switch {
	case err == nil:
		info.Width, info.Height = cfg.Width, cfg.Height
	case errors.Is(err, image.ErrFormat):
		// 没有对应解码器，交给模型自行处理
	default:
		return Info{}, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	return info, nil
}

// StripDataURL 去掉 "data:image/png;base64," 前缀
func StripDataURL(b64 string) string {
	s := strings.TrimSpace(b64)
	if i := strings.Index(s, ","); i != -1 && strings.HasPrefix(strings.ToLower(s[:i]), "data:") {
		return s[i+1:]
	}
	return s
}

// DecodeBase64 解码 base64 图片，兼容 data URL
func DecodeBase64(b64 string) ([]byte, error) {
	s := StripDataURL(b64)
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// 部分客户端使用无填充编码
		if b2, err2 := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err2 == nil {
			return b2, nil
		}
		return nil, fmt.Errorf("bad base64: %w", err)
	}
	return b, nil
}

// DataURL 把图片编码为 data URL
func DataURL(mime string, b []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}
