package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sngm3741/match-intake/api/internal/config"
	"github.com/sngm3741/match-intake/api/internal/infrastructure/csvfile"
	mongostore "github.com/sngm3741/match-intake/api/internal/infrastructure/mongo"
	"github.com/sngm3741/match-intake/api/internal/server"
)

func main() {
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		cfg.ServerLog.Fatalf("ストアの初期化に失敗しました: %v", err)
	}

	app := server.New(cfg, store)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}

func openStore(cfg config.Config) (server.RecordStore, error) {
	if cfg.StoreBackend != config.BackendMongo {
		return csvfile.New(cfg.CSVPath, cfg.ServerLog)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return mongostore.NewRecordRepository(client, cfg.MongoDatabase, cfg.SubmissionCollection), nil
}
