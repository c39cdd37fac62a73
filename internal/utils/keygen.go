package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"
)

// ObjectKey builds a collision-resistant blob key for an uploaded file:
// {prefix}/{unixMillis}_{randomHex}{ext}. The original file extension is
// preserved (lowercased); everything else about the name is discarded.
func ObjectKey(prefix, originalName string) (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(originalName))
	return fmt.Sprintf("%s/%d_%s%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b), ext), nil
}
