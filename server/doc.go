// Package server exposes an index over the Model Context Protocol.
//
// The server registers five tools:
//
//   - search_documents: ranked search over the index
//   - upsert_document: insert or merge a document by URL
//   - update_document_field: set one updatable field of a document
//   - remove_documents: remove documents by URL or tag
//   - index_stats: document count, version and collector stats
//
// Example usage:
//
//	ix := index.New(index.Options{})
//	_ = ix.Init()
//
//	srv, err := server.New(ix, server.Config{Name: "docindex", Version: "1.0.0"})
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
//
// RunHTTP serves the same tools over the streamable HTTP transport.
package server
