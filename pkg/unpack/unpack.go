package unpack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/bodgit/sevenzip"
	"github.com/mholt/archiver/v4"

	"subhit/pkg/logger"
)

// Hook receives each regular file found. Returning an error stops the walk
// and Walk returns that error.
type Hook func(r io.Reader, info fs.FileInfo) error

// Walk calls hook for every file inside the archive at path. Files that are
// not archives are passed to hook as they are.
func Walk(ctx context.Context, path string, hook Hook) (err error) {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unpack: %s: panic: %v", path, r)
		}
	}()

	format, input, err := archiver.Identify("", file)
	if errors.Is(err, archiver.ErrNoMatch) {
		return walkSevenZipOrPlain(path, file, hook)
	}
	if err != nil {
		return fmt.Errorf("unpack: identify %s: %w", path, err)
	}
	ex, ok := format.(archiver.Extractor)
	if !ok {
		return fmt.Errorf("unpack: %s: %s cannot be extracted", path, format.Name())
	}
	return ex.Extract(ctx, input, nil, func(_ context.Context, f archiver.File) error {
		if f.IsDir() {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			logger.L().Warn("unpack: skipping member", "archive", path, "member", f.NameInArchive, "err", err)
			return nil
		}
		defer rc.Close()
		return hook(rc, f.FileInfo)
	})
}

func walkSevenZipOrPlain(path string, file *os.File, hook Hook) error {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return err
		}
		info, err := file.Stat()
		if err != nil {
			return err
		}
		return hook(file, info)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			logger.L().Warn("unpack: skipping member", "archive", path, "member", f.Name, "err", err)
			continue
		}
		err = hook(rc, f.FileInfo())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
