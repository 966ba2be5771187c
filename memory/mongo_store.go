package memory

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
	"go.uber.org/zap"
)

// MongoStore persists conversation records through the odm collection
// layer. A nil collection degrades every operation gracefully so the
// conversation is never blocked by storage.
type MongoStore struct {
	collection odm.OdmCollectionInterface[schema.ConversationRecord]
}

func NewMongoStore(collection odm.OdmCollectionInterface[schema.ConversationRecord]) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) Load(ctx context.Context, sessionID string) *schema.ConversationRecord {
	if s.collection == nil {
		return schema.NewConversationRecord(sessionID)
	}

	record, err := async.Await(s.collection.FindOneByID(ctx, sessionID))
	if err != nil {
		logger.Error("Failed to find session, starting fresh",
			zap.String("session", sessionID), zap.Error(err))
		return schema.NewConversationRecord(sessionID)
	}

	// documents written before a field existed decode with nil maps
	record.Normalize()
	return record
}

func (s *MongoStore) Save(ctx context.Context, record *schema.ConversationRecord) error {
	if s.collection == nil {
		return nil
	}

	_, err := async.Await(s.collection.Save(ctx, *record))
	if err != nil {
		logger.Error("Failed to save session",
			zap.String("session", record.SessionID), zap.Error(err))
		return err
	}

	return nil
}

// Delete archives the record rather than removing the document; actual
// expiry is the retention policy's concern (a TTL index on the
// collection), not the engine's.
func (s *MongoStore) Delete(ctx context.Context, sessionID string) error {
	if s.collection == nil {
		return nil
	}

	record, err := async.Await(s.collection.FindOneByID(ctx, sessionID))
	if err != nil {
		logger.Error("Failed to find session for delete",
			zap.String("session", sessionID), zap.Error(err))
		return err
	}

	record.Status = schema.StatusArchived
	_, err = async.Await(s.collection.Save(ctx, *record))
	if err != nil {
		logger.Error("Failed to archive session",
			zap.String("session", sessionID), zap.Error(err))
	}
	return err
}
