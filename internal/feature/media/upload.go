package media

import (
	"context"
	"mime/multipart"
	"path"

	"alumni-reunion/internal/core/storage"
	"alumni-reunion/pkg/utils"
)

type Result struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
}

type Uploader struct {
	Store  storage.ObjectStore
	Prefix string
	Limits Limits
}

// Upload validates fh and stores it under <prefix>/<kind>s/<id><ext>.
func (u *Uploader) Upload(ctx context.Context, fh *multipart.FileHeader) (*Result, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, body, err := Validate(f, fh.Size, u.Limits)
	if err != nil {
		return nil, err
	}
	key := path.Join(u.Prefix, string(d.Kind)+"s", utils.NewID()+d.Ext)
	url, err := u.Store.Put(ctx, key, body, fh.Size, d.ContentType)
	if err != nil {
		return nil, err
	}
	return &Result{URL: url, Path: key, Kind: d.Kind}, nil
}
