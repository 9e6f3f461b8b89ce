package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/sngm3741/match-intake/api/internal/intake/domain"
)

func TestRecordRepository_Append(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts one document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewRecordRepository(mt.Client, "db", "coll")

		err := repo.Append(context.Background(), domain.Record{FirstName: "Ann", DateType: "Coffee"})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		assert.Equal(mt, "coll", started.Command.Lookup("insert").StringValue())

		docs, err := started.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		doc := docs[0].Document()
		assert.Equal(mt, "Ann", doc.Lookup("firstName").StringValue())
		assert.NotEmpty(mt, doc.Lookup("_id").StringValue())

		assert.Nil(mt, mt.GetStartedEvent(), "exactly one command per append")
	})

	mt.Run("wraps write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewRecordRepository(mt.Client, "db", "coll")

		err := repo.Append(context.Background(), domain.Record{FirstName: "Ann"})

		var storeErr *domain.StoreError
		require.ErrorAs(mt, err, &storeErr)
		assert.Equal(mt, "mongodb/db/coll", storeErr.Location)
		assert.Equal(mt, "mongodb/db/coll", repo.Location())
	})
}
