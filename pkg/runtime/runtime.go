package runtime

import (
	"fmt"

	"github.com/adrg/xdg"
)

const (
	XDGName = "tinyhouse"
)

// File is a path in the per-login runtime directory, which is emptied when
// the user's session ends
func File(filename string) (string, error) {
	return xdg.RuntimeFile(fmt.Sprintf("%s/%s", XDGName, filename))
}

// CacheFile is a path that survives across sessions
func CacheFile(filename string) (string, error) {
	return xdg.CacheFile(fmt.Sprintf("%s/%s", XDGName, filename))
}
