// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ocr

import (
	"context"
	"os"

	"github.com/rwcarlsen/goexif/exif"

	"docverify/internal/detector"
)

// exifFields are copied into the recognition metadata when present.
var exifFields = []exif.FieldName{
	exif.Orientation,
	exif.Make,
	exif.Model,
	exif.PixelXDimension,
	exif.PixelYDimension,
}

func (e *Engine) recognizeImage(ctx context.Context, path, language string) (detector.Recognition, error) {
	if _, err := os.Stat(path); err != nil {
		return detector.Recognition{}, err
	}
	text, err := e.tesseract(ctx, path, language)
	if err != nil {
		return detector.Recognition{}, err
	}
	return detector.Recognition{
		Text:     text,
		Method:   MethodImage,
		Pages:    1,
		Metadata: imageMetadata(path),
	}, nil
}

// imageMetadata reads EXIF tags from photos taken with a phone. Files
// without EXIF yield an empty map.
func imageMetadata(path string) map[string]string {
	meta := map[string]string{}
	f, err := os.Open(path)
	if err != nil {
		return meta
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return meta
	}
	for _, name := range exifFields {
		if tag, err := x.Get(name); err == nil {
			meta[string(name)] = tag.String()
		}
	}
	if t, err := x.DateTime(); err == nil {
		meta["CaptureTime"] = t.Format("2006-01-02 15:04:05")
	}
	return meta
}
