package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the exclusive upper bound on listing image size
const MaxImageSize = 1 << 20

var (
	ErrUnsupportedType = errors.New("image must be a JPG or PNG file")
	ErrTooLarge        = fmt.Errorf("image must be under %s in size", humanize.IBytes(MaxImageSize))

	allowedTypes = []string{"image/jpeg", "image/png"}
)

// CheckImage rejects anything that is not a JPEG or PNG under MaxImageSize.
// The type is checked first.
func CheckImage(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("unable to read image: %w", err)
	}
	if info.IsDir() {
		return "", ErrUnsupportedType
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to detect image type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return "", ErrUnsupportedType
	}

	if info.Size() >= MaxImageSize {
		return "", ErrTooLarge
	}
	return mtype.String(), nil
}

// EncodeImage checks the image at path and returns it as a base64 data URL
func EncodeImage(path string) (string, error) {
	mime, err := CheckImage(path)
	if err != nil {
		return "", err
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read image: %w", err)
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(raw)), nil
}
