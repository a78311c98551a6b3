package documents

import "cvmatch-backend/internal/extract"

// Document is an uploaded CV held in memory for the lifetime of one request.
type Document struct {
	FileName  string
	Kind      extract.Kind
	SizeBytes int64
	Data      []byte
}
