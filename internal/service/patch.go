package service

import (
	"bytes"
	"encoding/json"
	"mime"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/iliyamo/animal-shelter/internal/apperror"
)

// Media types of the supported partial documents.
const (
	MediaJSONPatch  = "application/json-patch+json"
	MediaMergePatch = "application/merge-patch+json"
)

// Patch is a partial update document as received from the client.
type Patch struct {
	ContentType string
	Body        []byte
}

// isJSONPatch picks RFC 6902 for its media type or for an array body;
// anything else is treated as an RFC 7396 merge patch.
func (p Patch) isJSONPatch() bool {
	if mt, _, err := mime.ParseMediaType(p.ContentType); err == nil {
		switch mt {
		case MediaJSONPatch:
			return true
		case MediaMergePatch:
			return false
		}
	}
	return bytes.HasPrefix(bytes.TrimSpace(p.Body), []byte("["))
}

// applyPatch applies p to the JSON form of current and decodes the
// result strictly into a fresh T.  Members the projection does not know
// are rejected.
func applyPatch[T any](current T, p Patch) (T, error) {
	var zero T
	if len(bytes.TrimSpace(p.Body)) == 0 {
		return zero, apperror.InvalidField("body", "patch document is empty")
	}
	original, err := json.Marshal(current)
	if err != nil {
		return zero, apperror.Internal(err.Error(), err)
	}

	var patched []byte
	if p.isJSONPatch() {
		ops, err := jsonpatch.DecodePatch(p.Body)
		if err != nil {
			return zero, apperror.InvalidField("body", "malformed JSON patch: "+err.Error())
		}
		if patched, err = ops.Apply(original); err != nil {
			return zero, apperror.InvalidField("body", "patch could not be applied: "+err.Error())
		}
	} else {
		if patched, err = jsonpatch.MergePatch(original, p.Body); err != nil {
			return zero, apperror.InvalidField("body", "malformed merge patch: "+err.Error())
		}
	}

	var out T
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return zero, apperror.InvalidField("body", "patched document is invalid: "+err.Error())
	}
	return out, nil
}
