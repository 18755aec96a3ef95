package qdrant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
	"github.com/custodia-labs/workmirror/internal/logger"
)

// Config holds the connection settings for a Qdrant server.
type Config struct {
	Host       string
	Port       int
	Collection string
	// Dimensions is the vector size of the collection. It must match the
	// embedding model in use.
	Dimensions int
}

// DefaultConfig returns settings for a local Qdrant instance.
func DefaultConfig() Config {
	return Config{
		Host:       "localhost",
		Port:       6334,
		Collection: "workmirror",
		Dimensions: 1536,
	}
}

// Index implements driven.VectorIndex on top of a Qdrant collection.
type Index struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
}

var _ driven.VectorIndex = (*Index)(nil)

// NewIndex connects to the server and ensures the collection exists,
// creating it with cosine distance when missing.
func NewIndex(ctx context.Context, cfg Config) (*Index, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect to qdrant at %s: %w", addr, err)
	}

	idx := &Index{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  cfg.Collection,
	}

	if err := idx.ensureCollection(ctx, cfg.Dimensions); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrVectorIndexUnavailable, err)
	}

	return idx, nil
}

func (i *Index) ensureCollection(ctx context.Context, dimensions int) error {
	list, err := i.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == i.collection {
			return nil
		}
	}

	logger.Info("Creating Qdrant collection %q (dim=%d)", i.collection, dimensions)
	_, err = i.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: i.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(dimensions),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create collection %q: %w", i.collection, err)
	}
	return nil
}

// Upsert writes the vector and its filter payload under a point id derived
// from the record id.
func (i *Index) Upsert(ctx context.Context, id string, vector []float32, meta domain.EmbeddingMetadata) error {
	point := &qdrantclient.PointStruct{
		Id: pointID(id),
		Vectors: &qdrantclient.Vectors{
			VectorsOptions: &qdrantclient.Vectors_Vector{
				Vector: &qdrantclient.Vector{Data: vector},
			},
		},
		Payload: payloadFor(meta),
	}

	_, err := i.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: i.collection,
		Points:         []*qdrantclient.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("upsert point %s: %w", id, err)
	}
	return nil
}

// Delete removes the point for a record id. Deleting a missing point is
// not an error.
func (i *Index) Delete(ctx context.Context, id string) error {
	_, err := i.points.Delete(ctx, &qdrantclient.DeletePoints{
		CollectionName: i.collection,
		Points: &qdrantclient.PointsSelector{
			PointsSelectorOneOf: &qdrantclient.PointsSelector_Points{
				Points: &qdrantclient.PointsIdsList{
					Ids: []*qdrantclient.PointId{pointID(id)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("delete point %s: %w", id, err)
	}
	return nil
}

// Close tears down the grpc connection.
func (i *Index) Close() error {
	return i.conn.Close()
}

// pointIDNamespace seeds deterministic UUIDs for non-numeric record ids,
// so repeated upserts of the same record land on the same point.
var pointIDNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func pointID(id string) *qdrantclient.PointId {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return &qdrantclient.PointId{
			PointIdOptions: &qdrantclient.PointId_Num{Num: n},
		}
	}
	return &qdrantclient.PointId{
		PointIdOptions: &qdrantclient.PointId_Uuid{
			Uuid: uuid.NewSHA1(pointIDNamespace, []byte(id)).String(),
		},
	}
}

func payloadFor(meta domain.EmbeddingMetadata) map[string]*qdrantclient.Value {
	labels := make([]*qdrantclient.Value, 0, len(meta.ScopeLabels))
	for _, l := range meta.ScopeLabels {
		labels = append(labels, &qdrantclient.Value{
			Kind: &qdrantclient.Value_StringValue{StringValue: l},
		})
	}
	return map[string]*qdrantclient.Value{
		"origin": {Kind: &qdrantclient.Value_StringValue{StringValue: meta.Origin}},
		"scope_labels": {Kind: &qdrantclient.Value_ListValue{
			ListValue: &qdrantclient.ListValue{Values: labels},
		}},
		"classification": {Kind: &qdrantclient.Value_StringValue{StringValue: string(meta.Classification)}},
		"kind":           {Kind: &qdrantclient.Value_StringValue{StringValue: string(meta.Kind)}},
		"record_id":      {Kind: &qdrantclient.Value_StringValue{StringValue: meta.ID}},
	}
}
