package media

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(path, content, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeImage(t *testing.T) {
	path := writeFile(t, "listing.png", pngHeader)
	payload, err := EncodeImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(payload, "data:image/png;base64,") {
		t.Fatalf("unexpected payload prefix %q", payload[:30])
	}
}

func TestCheckImageRejections(t *testing.T) {
	text := writeFile(t, "listing.txt", []byte("definitely not a picture"))
	if _, err := CheckImage(text); err != ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType but got %v", err)
	}

	big := append([]byte{}, pngHeader...)
	big = append(big, bytes.Repeat([]byte{0}, MaxImageSize)...)
	large := writeFile(t, "large.png", big)
	if _, err := CheckImage(large); err != ErrTooLarge {
		t.Fatalf("expected ErrTooLarge but got %v", err)
	}

	// a large file of the wrong type reports the type first
	wrong := writeFile(t, "large.txt", bytes.Repeat([]byte("a"), MaxImageSize+1))
	if _, err := CheckImage(wrong); err != ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType but got %v", err)
	}

	if _, err := CheckImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestErrorMessagesAreDistinct(t *testing.T) {
	if ErrUnsupportedType.Error() == ErrTooLarge.Error() {
		t.Fatal("each violated rule needs its own message")
	}
	if !strings.Contains(ErrTooLarge.Error(), "1.0 MiB") {
		t.Fatalf("unexpected size message %q", ErrTooLarge.Error())
	}
}
