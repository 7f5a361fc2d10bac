package db

import (
	"context"
	"errors"
	"slices"

	"dpofinder/domain"
	"dpofinder/utils"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QueryEntity struct {
	ShareId string       `bson:"_id,omitempty" json:"shareId"`
	Query   domain.Query `json:"query"`
}

// ErrShareDbDisabled is returned when SHARE_DB_URL is unset and no
// persistence is available.
var ErrShareDbDisabled = errors.New("share database is not configured")

var (
	sharedDb *mongo.Database
)

// ShareDbEnabled reports whether persistence was configured and
// connected at startup.
func ShareDbEnabled() bool {
	return sharedDb != nil
}

// InitShareDb connects to MongoDB and sets up the global client.
// Skipped entirely when no URL is configured: sharing and feedback
// then return ErrShareDbDisabled instead of failing startup.
func InitShareDb() {
	if utils.Cfg.Database.Url == "" {
		log.Warn("SHARE_DB_URL not set, share links and feedback are disabled")
		return
	}

	clientOpts := options.Client().ApplyURI(utils.Cfg.Database.Url)
	if utils.Cfg.Database.User != "" {
		clientOpts.SetAuth(options.Credential{
			Username: utils.Cfg.Database.User,
			Password: utils.Cfg.Database.Password,
		})
	}

	mongoClient, err := utils.RetryWrapper(context.TODO(), func() (*mongo.Client, error) {
		return mongo.Connect(context.TODO(), clientOpts)
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}

	sharedDb = mongoClient.Database(utils.Cfg.Database.Name)
	log.Infof("Connected to MongoDB at %s", utils.Cfg.Database.Url)

	names, err := sharedDb.ListCollectionNames(context.TODO(), bson.D{{}})
	if err != nil {
		log.WithError(err).Fatal("Failed to list collections in MongoDB")
	}

	for _, name := range []string{"queries", "feedback"} {
		if !slices.Contains(names, name) {
			err = sharedDb.CreateCollection(context.TODO(), name)
			if err != nil {
				log.WithError(err).Fatalf("Failed to create '%s' collection in MongoDB", name)
			} else {
				log.Infof("Created '%s' collection in MongoDB", name)
			}
		}
	}
}

// SaveQuery persists a resolved query and returns its share id. The id
// is the query hash, so saving the same query twice is idempotent at
// the collection level (duplicate key).
func SaveQuery(ctx context.Context, queryEntity QueryEntity) (shareId string, err error) {
	if sharedDb == nil {
		return "", ErrShareDbDisabled
	}

	if queryEntity.ShareId == "" {
		if queryEntity.Query.HelperQueryHash == "" {
			queryEntity.Query.GenerateQueryHash()
		}
		queryEntity.ShareId = queryEntity.Query.HelperQueryHash
	}

	collection := sharedDb.Collection("queries")

	result, err := collection.InsertOne(ctx, queryEntity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return queryEntity.ShareId, nil
		}
		log.WithError(err).Error("Failed to save query")
		return shareId, err
	}

	shareId = result.InsertedID.(string)
	return shareId, nil
}

// GetQueryById fetches a shared query. Unknown ids return nil, nil.
func GetQueryById(ctx context.Context, shareId string) (*domain.Query, error) {
	if sharedDb == nil {
		return nil, ErrShareDbDisabled
	}

	collection := sharedDb.Collection("queries")
	var queryEntity QueryEntity

	err := collection.FindOne(ctx, bson.M{"_id": shareId}).
		Decode(&queryEntity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		log.WithError(err).Error("Failed to find query by ID")
		return nil, err
	}

	return &queryEntity.Query, nil
}

// InsertFeedback stores one user correction report.
func InsertFeedback(ctx context.Context, feedback domain.Feedback) error {
	if sharedDb == nil {
		return ErrShareDbDisabled
	}

	collection := sharedDb.Collection("feedback")
	if _, err := collection.InsertOne(ctx, feedback); err != nil {
		log.WithError(err).Error("Failed to save feedback")
		return err
	}

	return nil
}

// RecentFeedback lists the most recent correction reports.
func RecentFeedback(ctx context.Context, limit int64) ([]domain.Feedback, error) {
	if sharedDb == nil {
		return nil, ErrShareDbDisabled
	}

	collection := sharedDb.Collection("feedback")
	findOpts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		log.WithError(err).Error("Failed to list feedback")
		return nil, err
	}

	var reports []domain.Feedback
	if err := cursor.All(ctx, &reports); err != nil {
		log.WithError(err).Error("Failed to decode feedback")
		return nil, err
	}

	return reports, nil
}
