package media

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var accepted = map[string]Kind{
	"image/jpeg":      KindImage,
	"image/png":       KindImage,
	"image/gif":       KindImage,
	"image/webp":      KindImage,
	"image/heic":      KindImage,
	"image/heif":      KindImage,
	"video/mp4":       KindVideo,
	"video/quicktime": KindVideo,
	"video/webm":      KindVideo,
}

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

type Limits struct {
	MaxImageBytes int64
	MaxVideoBytes int64
}

func (l Limits) max(k Kind) int64 {
	if k == KindVideo {
		return l.MaxVideoBytes
	}
	return l.MaxImageBytes
}

// Detected describes a file that passed validation.
type Detected struct {
	Kind        Kind
	ContentType string
	Ext         string
}

// Validate sniffs the leading bytes of r and checks type and size.
// The returned reader replays the sniffed header followed by the rest of r.
func Validate(r io.Reader, size int64, lim Limits) (Detected, io.Reader, error) {
	if size <= 0 {
		return Detected{}, nil, &ValidationError{Msg: "file is empty"}
	}
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Detected{}, nil, err
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	kind, ok := kindOf(mt)
	if !ok {
		return Detected{}, nil, &ValidationError{Msg: "unsupported file type: " + mt.String()}
	}
	if limit := lim.max(kind); limit > 0 && size > limit {
		return Detected{}, nil, &ValidationError{Msg: fmt.Sprintf("file too large: max %dMB for %s", limit>>20, kind)}
	}
	d := Detected{Kind: kind, ContentType: mt.String(), Ext: mt.Extension()}
	return d, io.MultiReader(bytes.NewReader(head), r), nil
}

func kindOf(mt *mimetype.MIME) (Kind, bool) {
	for m := mt; m != nil; m = m.Parent() {
		if k, ok := accepted[m.String()]; ok {
			return k, true
		}
	}
	return "", false
}
