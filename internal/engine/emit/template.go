// Package emit assigns final names to compiled files.
package emit

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/zerr"
)

var placeholder = regexp.MustCompile(`\[(name|ext|hash|contenthash|chunkhash)(?::(\d+))?\]`)

// Digest returns the hex content digest used for hash placeholders.
func Digest(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// Expand fills the placeholders of tmpl. ext is given without the leading dot.
// Hash placeholders are truncated to their requested length; longer requests
// get the full digest.
func Expand(tmpl, name, ext, digest string) (string, error) {
	var err error
	out := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		parts := placeholder.FindStringSubmatch(m)
		switch parts[1] {
		case "name":
			return name
		case "ext":
			return ext
		}
		if parts[2] == "" {
			return digest
		}
		n, convErr := strconv.Atoi(parts[2])
		if convErr != nil || n == 0 {
			err = zerr.With(zerr.Wrap(domain.ErrInvalidTemplate, "invalid hash length"), "template", tmpl)
			return m
		}
		return digest[:min(n, len(digest))]
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
