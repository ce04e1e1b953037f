package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type slotDoc struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type mongoSlot struct {
	coll *mongo.Collection
	name string
}

func (s *mongoSlot) Load(ctx context.Context) ([]byte, error) {
	var doc slotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Data, nil
}

func (s *mongoSlot) Store(ctx context.Context, data []byte) error {
	doc := slotDoc{Name: s.name, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.name}, doc, options.Replace().SetUpsert(true))
	return err
}

// MustMongoSlots connects to MongoDB and returns the two snapshot slots
// backed by one document each in the "slots" collection. ReplaceOne gives
// the same atomic-replace semantics as the file rename of the fs backend.
func MustMongoSlots(ctx context.Context, host, dbname, username, password, authSource string) (venues, index Slot) {
	clientOpts := options.Client().
		ApplyURI("mongodb://" + host).
		SetAuth(options.Credential{
			Username:   username,
			Password:   password,
			AuthSource: authSource,
		})

	cli, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		panic(err)
	}
	if err = cli.Ping(ctx, nil); err != nil {
		panic(err)
	}

	coll := cli.Database(dbname).Collection("slots")
	return &mongoSlot{coll: coll, name: VenuesSlotName}, &mongoSlot{coll: coll, name: IndexSlotName}
}
