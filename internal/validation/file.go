package validation

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// sniffLen is how much of a file http.DetectContentType looks at.
const sniffLen = 512

var (
	ErrUploadTooLarge     = errors.New("file is too large")
	ErrUploadExtension    = errors.New("unsupported file extension")
	ErrUploadType         = errors.New("file content does not match its extension")
	ErrUploadNotUTF8      = errors.New("file must be UTF-8 encoded")
	errUploadUnreadable   = errors.New("failed to read uploaded file")
	markdownSniffedTypes  = []string{"text/plain", "text/html"}
	plainTextSniffedTypes = []string{"text/plain"}
)

// UploadRules maps each accepted extension to the media types the file's
// content may sniff as.
type UploadRules struct {
	Types   map[string][]string
	MaxSize int64
}

// MarkdownUpload accepts markdown and plain-text notes. Markdown that opens
// with an HTML comment or tag sniffs as text/html and is still accepted;
// rendering never passes raw HTML through.
var MarkdownUpload = UploadRules{
	Types: map[string][]string{
		".md":       markdownSniffedTypes,
		".markdown": markdownSniffedTypes,
		".txt":      plainTextSniffedTypes,
	},
	MaxSize: 1 << 20,
}

// ValidateUpload checks size and extension from the header, then sniffs the
// first bytes of the content. Text must be UTF-8.
func ValidateUpload(header *multipart.FileHeader, rules UploadRules) error {
	if header.Size > rules.MaxSize {
		return fmt.Errorf("%w: maximum size is %d KB", ErrUploadTooLarge, rules.MaxSize>>10)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed, ok := rules.Types[ext]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUploadExtension, ext)
	}

	mediaType, charset, err := sniff(header)
	if err != nil {
		return err
	}

	if !slices.Contains(allowed, mediaType) {
		return fmt.Errorf("%w (detected %s)", ErrUploadType, mediaType)
	}
	if strings.HasPrefix(mediaType, "text/") && charset != "" && !strings.EqualFold(charset, "utf-8") {
		return ErrUploadNotUTF8
	}

	return nil
}

func sniff(header *multipart.FileHeader) (mediaType, charset string, err error) {
	file, err := header.Open()
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", errUploadUnreadable, err)
	}
	defer func() { _ = file.Close() }()

	sample := make([]byte, sniffLen)
	n, err := io.ReadFull(file, sample)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", "", fmt.Errorf("%w: %w", errUploadUnreadable, err)
	}

	mediaType, params, err := mime.ParseMediaType(http.DetectContentType(sample[:n]))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", errUploadUnreadable, err)
	}

	return mediaType, params["charset"], nil
}
