package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrolan/chatbot-api/internal/domain"
)

func TestParseInput(t *testing.T) {
	cases := []struct {
		in       string
		wantText string
		wantPath string
	}{
		{"halo dunia", "halo dunia", ""},
		{"/file /tmp/foto.png", "", "/tmp/foto.png"},
		{"/file /tmp/foto.png lihat ini", "lihat ini", "/tmp/foto.png"},
		{"/file ", "", ""},
	}
	for _, tc := range cases {
		text, path := parseInput(tc.in)
		assert.Equal(t, tc.wantText, text, "input %q", tc.in)
		assert.Equal(t, tc.wantPath, path, "input %q", tc.in)
	}
}

func TestBuildAttachmentMetadataOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catatan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"isi":"catatan"}`), 0o644))

	ref, err := buildAttachment(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "catatan.json", ref.Name)
	assert.Equal(t, int64(len(`{"isi":"catatan"}`)), ref.SizeBytes)
	assert.Contains(t, ref.MimeType, "application/json")
	assert.Empty(t, ref.PreviewPath, "non-image files get no preview")
}

func TestBuildAttachmentSpoolsImagePreview(t *testing.T) {
	dir := t.TempDir()
	previewDir := t.TempDir()
	path := filepath.Join(dir, "foto.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o644))

	ref, err := buildAttachment(path, previewDir)
	require.NoError(t, err)

	require.NotEmpty(t, ref.PreviewPath)
	assert.Equal(t, previewDir, filepath.Dir(ref.PreviewPath))
	_, err = os.Stat(ref.PreviewPath)
	assert.NoError(t, err, "preview copy must exist until released")
}

func TestDisplayText(t *testing.T) {
	att := &domain.AttachmentRef{Name: "foto.png", SizeBytes: 2048}
	assert.Equal(t, "lihat\n📎 foto.png (2.0 KB)", displayText("lihat", att))
	assert.Equal(t, "📎 foto.png (2.0 KB)", displayText("", att))
	assert.Equal(t, "polos", displayText("polos", nil))
}
