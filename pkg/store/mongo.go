package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workflowCollection = "workflows"

// MongoStore is a MongoDB-backed Store for production deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection, and ensures
// the unique index on workflow IDs.
func NewMongoStore(ctx context.Context, url, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	coll := client.Database(database).Collection(workflowCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Create stores a new workflow.
func (s *MongoStore) Create(ctx context.Context, w Workflow) error {
	_, err := s.coll.InsertOne(ctx, w)
	if mongo.IsDuplicateKeyError(err) {
		return Conflict(w.ID)
	}
	return err
}

// Get retrieves a workflow by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Workflow, error) {
	var w Workflow
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return Workflow{}, NotFound(id)
	}
	if err != nil {
		return Workflow{}, err
	}
	return w, nil
}

// Update replaces an existing workflow's name and graph.
func (s *MongoStore) Update(ctx context.Context, w Workflow) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"id": w.ID},
		bson.M{"$set": bson.M{
			"name":       w.Name,
			"graph":      w.Graph,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return NotFound(w.ID)
	}
	return nil
}

// Delete removes a workflow.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return NotFound(id)
	}
	return nil
}

// List returns all workflows, most recently updated first.
func (s *MongoStore) List(ctx context.Context) ([]Workflow, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	workflows := []Workflow{}
	if err := cur.All(ctx, &workflows); err != nil {
		return nil, err
	}
	return workflows, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
