package ui

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/obrolan/chatbot-api/internal/domain"
)

// attachPrefix marks an input line that carries a file attachment:
// "/file <path> [message...]".
const attachPrefix = "/file "

// parseInput splits an input line into message text and an optional
// attachment path.
func parseInput(raw string) (text string, attachPath string) {
	if !strings.HasPrefix(raw, attachPrefix) {
		return raw, ""
	}
	rest := strings.TrimSpace(strings.TrimPrefix(raw, attachPrefix))
	if rest == "" {
		return "", ""
	}
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		return strings.TrimSpace(rest[i+1:]), rest[:i]
	}
	return "", rest
}

// buildAttachment stats the file and returns its metadata. Image files get a
// preview copy spooled into previewDir; the spooled copy is the scoped
// resource the session releases when the message is evicted. The file
// content is never parsed.
func buildAttachment(path, previewDir string) (*domain.AttachmentRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attachment %s is a directory", path)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	ref := &domain.AttachmentRef{
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
		MimeType:  mimeType,
	}

	if strings.HasPrefix(mimeType, "image/") && previewDir != "" {
		preview, err := spoolPreview(path, previewDir)
		if err != nil {
			return nil, err
		}
		ref.PreviewPath = preview
	}

	return ref, nil
}

func spoolPreview(path, previewDir string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open attachment: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(previewDir, "preview-*"+filepath.Ext(path))
	if err != nil {
		return "", fmt.Errorf("create preview: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("copy preview: %w", err)
	}
	return dst.Name(), nil
}

// displayText is what the thread shows for an outgoing message: the text
// plus a paperclip line when a file rides along.
func displayText(text string, att *domain.AttachmentRef) string {
	if att == nil {
		return text
	}
	info := fmt.Sprintf("📎 %s (%.1f KB)", att.Name, float64(att.SizeBytes)/1024)
	if text == "" {
		return info
	}
	return text + "\n" + info
}
