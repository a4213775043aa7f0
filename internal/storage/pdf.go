package storage

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxPDFSize     = 5 << 20
	PDFContentType = "application/pdf"
)

var (
	ErrNotPDF       = errors.New("file is not a PDF document")
	ErrFileTooLarge = errors.New("file exceeds the size limit")
)

// ReadPDF reads an uploaded part and checks it is a PDF by content, not by
// its declared name or header.
func ReadPDF(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > MaxPDFSize {
		return nil, ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ValidatePDF(f)
}

func ValidatePDF(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPDFSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxPDFSize {
		return nil, ErrFileTooLarge
	}
	if !mimetype.Detect(data).Is(PDFContentType) {
		return nil, ErrNotPDF
	}
	return data, nil
}
