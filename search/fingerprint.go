package search

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/jonwraymond/docindex/document"
)

// computeFingerprint generates a stable hash of the document slice.
// It changes whenever any field of any document changes, so exported
// states can be compared cheaply.
func computeFingerprint(docs []document.Document) string {
	h := sha256.New()

	for _, doc := range docs {
		for _, s := range []string{
			doc.ID,
			doc.URL,
			doc.Name,
			doc.Title,
			doc.Description,
			doc.Keywords,
			doc.Content,
			doc.BookmarkID,
			doc.Note,
		} {
			h.Write([]byte(s))
			h.Write([]byte{0}) // separator
		}

		// Tag order is significant: it reflects collector order.
		h.Write([]byte(strings.Join(doc.Tags, "\x01")))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
