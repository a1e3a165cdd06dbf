package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// defaultArtifactFormat names keys whose options carry no format.
const defaultArtifactFormat = "artifact"

// Hash returns the hex SHA-256 digest of data. The pipeline hashes the DOT
// text of a document rather than the document itself, so renderings that
// differ only in their generation time share a digest.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// artifactKey derives "<format>:<sha256>" from the input digest and the
// options the artifact was rendered with.
func artifactKey(inputHash string, opts ArtifactKeyOpts) string {
	format := opts.Format
	if format == "" {
		format = defaultArtifactFormat
	}
	h := sha256.New()
	for _, part := range []string{inputHash, format, strconv.FormatBool(opts.Detailed)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return format + ":" + hex.EncodeToString(h.Sum(nil))
}
