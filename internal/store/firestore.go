package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultFirestoreCollection = "kvstore"

// FirestoreKV keeps one Firestore document per key. It lets the same
// template collection be shared across machines when a GCP project is
// configured.
type FirestoreKV struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreKV(client *firestore.Client, collection string) *FirestoreKV {
	if collection == "" {
		collection = defaultFirestoreCollection
	}
	return &FirestoreKV{client: client, collection: collection}
}

type firestoreRecord struct {
	Value []byte `firestore:"value"`
}

func (f *FirestoreKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	snap, err := f.client.Collection(f.collection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read firestore key %q: %w", key, err)
	}
	var rec firestoreRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, false, fmt.Errorf("decode firestore key %q: %w", key, err)
	}
	return rec.Value, true, nil
}

func (f *FirestoreKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := f.client.Collection(f.collection).Doc(key).Set(ctx, firestoreRecord{Value: value})
	if err != nil {
		return fmt.Errorf("write firestore key %q: %w", key, err)
	}
	return nil
}
