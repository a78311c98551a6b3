package documents

import (
	"bytes"
	"errors"
	"mime/multipart"
	"testing"

	"cvmatch-backend/internal/extract"
)

func fileHeader(t *testing.T, fileName string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("expected 1 file part, got %d", len(files))
	}
	return files[0]
}

func TestFromFileHeaderReadsUpload(t *testing.T) {
	payload := []byte("%PDF-1.4 fake content")
	doc, err := FromFileHeader(fileHeader(t, "resume.pdf", payload))
	if err != nil {
		t.Fatalf("FromFileHeader: %v", err)
	}
	if doc.Kind != extract.KindPDF {
		t.Fatalf("kind = %q, want %q", doc.Kind, extract.KindPDF)
	}
	if doc.FileName != "resume.pdf" {
		t.Fatalf("file name = %q, want resume.pdf", doc.FileName)
	}
	if doc.SizeBytes != int64(len(payload)) {
		t.Fatalf("size = %d, want %d", doc.SizeBytes, len(payload))
	}
	if !bytes.Equal(doc.Data, payload) {
		t.Fatalf("data does not match upload")
	}
}

func TestFromFileHeaderLegacyDocKind(t *testing.T) {
	doc, err := FromFileHeader(fileHeader(t, "resume.doc", []byte("word binary")))
	if err != nil {
		t.Fatalf("FromFileHeader: %v", err)
	}
	if doc.Kind != extract.KindDOCX {
		t.Fatalf("kind = %q, want %q", doc.Kind, extract.KindDOCX)
	}
}

func TestFromFileHeaderNil(t *testing.T) {
	_, err := FromFileHeader(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestFromFileHeaderTraversalName(t *testing.T) {
	// Slash-separated names are already flattened by multipart's
	// filepath.Base; backslash names reach the sanitizer intact.
	_, err := FromFileHeader(fileHeader(t, `..\..\etc\passwd.pdf`, []byte("x")))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestFromFileHeaderUnsupportedExtension(t *testing.T) {
	_, err := FromFileHeader(fileHeader(t, "notes.txt", []byte("text")))
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unsupported extension must not map to invalid input")
	}
}

func TestFromFileHeaderEmptyFileAccepted(t *testing.T) {
	doc, err := FromFileHeader(fileHeader(t, "resume.pdf", nil))
	if err != nil {
		t.Fatalf("FromFileHeader: %v", err)
	}
	if doc.SizeBytes != 0 || len(doc.Data) != 0 {
		t.Fatalf("expected empty document, got %d bytes", doc.SizeBytes)
	}
}
