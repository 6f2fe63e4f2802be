package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/images"
)

// Form is an explicit multipart schema: named scalar fields in declaration
// order plus named file slots with a repeated field name. Field names cross
// the wire exactly as set; the server's multipart parser matches on them.
type Form struct {
	fields []formField
	files  []FileSlot
}

type formField struct {
	name  string
	value string
}

// FileSlot is one file attached under a (possibly repeated) field name, e.g.
// every review photo goes under "images".
type FileSlot struct {
	Field    string
	Filename string
	Reader   io.Reader
	// RawCopy skips image preprocessing for non-image payloads.
	RawCopy bool
}

func NewForm() *Form {
	return &Form{}
}

// Set adds a scalar field. Every scalar is copied, including empty ones: the
// server distinguishes "field sent empty" (clear it) from "field absent"
// (leave it) on update endpoints.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// SetOptional adds a scalar field only when the value is non-empty.
func (f *Form) SetOptional(name, value string) *Form {
	if value != "" {
		f.Set(name, value)
	}
	return f
}

// AddFile appends a file under the given field name. Repeated calls with the
// same name produce a repeated field, which is how image lists are sent.
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, FileSlot{Field: field, Filename: filename, Reader: r})
	return f
}

// encode writes the multipart body, piping image files through the
// preprocessing pipeline (resize + webp re-encode).
func (f *Form) encode(opt images.Options) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range f.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %q: %w", field.name, err)
		}
	}

	for _, slot := range f.files {
		if slot.RawCopy || !looksLikeImage(slot.Filename) {
			part, err := writer.CreateFormFile(slot.Field, slot.Filename)
			if err != nil {
				return nil, "", fmt.Errorf("failed to create file part %q: %w", slot.Field, err)
			}
			if _, err := io.Copy(part, slot.Reader); err != nil {
				return nil, "", fmt.Errorf("failed to copy file %q: %w", slot.Filename, err)
			}
			continue
		}

		processed, contentType, err := images.Process(slot.Reader, slot.Filename, opt)
		if err != nil {
			return nil, "", fmt.Errorf("failed to process image %q: %w", slot.Filename, err)
		}
		part, err := writer.CreateFormFile(slot.Field, rewriteExt(slot.Filename, contentType))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %q: %w", slot.Field, err)
		}
		if _, err := part.Write(processed); err != nil {
			return nil, "", fmt.Errorf("failed to write file %q: %w", slot.Filename, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func looksLikeImage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

// rewriteExt keeps the base name but matches the extension to the re-encoded
// content type.
func rewriteExt(filename, contentType string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	switch contentType {
	case "image/webp":
		return base + ".webp"
	case "image/jpeg":
		return base + ".jpg"
	}
	return filename
}

// doMultipart issues one multipart request through the shared transport.
func (c *Client) doMultipart(ctx context.Context, method, path string, form *Form, opts ...Option) (*domain.Response, error) {
	body, contentType, err := form.encode(c.imageOpt)
	if err != nil {
		return nil, err
	}
	return c.roundTrip(ctx, method, path, url.Values{}, body, contentType, opts...)
}
