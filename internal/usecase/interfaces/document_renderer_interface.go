package interfaces

import (
	"context"
	"encoding/json"
)

// IDocumentRenderer abstracts the external rendering collaborator that turns
// a document context plus payment schedule into a downloadable file.
//
// The payload is passed through as raw JSON: company identity, project
// address and document numbering are the caller's context and are never
// inspected here.
type IDocumentRenderer interface {
	RenderDocument(ctx context.Context, payload json.RawMessage) (fileURL string, err error)
}
