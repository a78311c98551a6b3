package documents

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"cvmatch-backend/internal/extract"
	"cvmatch-backend/internal/shared/util"
)

// ErrInvalidInput reports an upload that fails basic validation.
var ErrInvalidInput = errors.New("invalid input")

// FromFileHeader validates a multipart upload and reads it fully into memory.
// The declared kind is derived from the file extension; content is not
// sniffed, so a mislabeled file surfaces later as an extraction failure.
func FromFileHeader(fh *multipart.FileHeader) (Document, error) {
	if fh == nil {
		return Document{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	name, err := util.SanitizeFileName(fh.Filename)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	kind, err := extract.KindForFileName(name)
	if err != nil {
		return Document{}, err
	}

	file, err := fh.Open()
	if err != nil {
		return Document{}, fmt.Errorf("%w: unable to read file", ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Document{}, fmt.Errorf("%w: unable to read file", ErrInvalidInput)
	}

	return Document{
		FileName:  name,
		Kind:      kind,
		SizeBytes: int64(len(data)),
		Data:      data,
	}, nil
}
