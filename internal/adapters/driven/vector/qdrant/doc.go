// Package qdrant provides a vector index backed by a Qdrant server,
// accessed over grpc.
package qdrant
