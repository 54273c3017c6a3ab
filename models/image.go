package models

import (
	"bytes"
	"io"
)

// ImageFile is an uploaded form file held in memory until it is sent to the
// storage bucket.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (f *ImageFile) Reader() io.Reader { return bytes.NewReader(f.Data) }

func (f *ImageFile) Size() int64 { return int64(len(f.Data)) }
