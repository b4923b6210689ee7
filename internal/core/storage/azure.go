package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

// Blob Azure 块存储客户端（shared key 鉴权）
type Blob struct {
	client *azblob.Client
}

func New(serviceURL, account, key string) (*Blob, error) {
	cred, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return nil, err
	}
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, err
	}
	return &Blob{client: client}, nil
}

// Upload 上传一个块 blob，返回可访问 URL
func (b *Blob) Upload(ctx context.Context, container, name string, data []byte) (string, error) {
	if _, err := b.client.UploadBuffer(ctx, container, name, data, nil); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.client.URL(), "/") + "/" + container + "/" + name, nil
}

// UploadBase64Image 解析 data:image/...;base64 字符串并上传。
// 只认 png/jpg/jpeg，文件名用时间戳随机化。
func (b *Blob) UploadBase64Image(ctx context.Context, container, base64Str string) (string, error) {
	ext, data, err := DecodeBase64Image(base64Str)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d.%s", time.Now().UnixMilli(), ext)
	return b.Upload(ctx, container, name, data)
}

func DecodeBase64Image(base64Str string) (ext string, data []byte, err error) {
	head, payload, found := strings.Cut(base64Str, ";base64,")
	if !found || payload == "" {
		return "", nil, errors.New("invalid base64 format")
	}

	switch strings.TrimPrefix(head, "data:") {
	case "image/png":
		ext = "png"
	case "image/jpg":
		ext = "jpg"
	case "image/jpeg":
		ext = "jpeg"
	default:
		return "", nil, ErrUnsupportedImage
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return ext, data, nil
}
