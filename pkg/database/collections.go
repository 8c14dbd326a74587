package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createCatalogIndexes()
	createTripsIndexes()
}

func createCatalogIndexes() {
	routesCollection := GetCollection("routes")
	routesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "depotref", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := routesCollection.Indexes().CreateMany(context.Background(), routesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	busesCollection := GetCollection("buses")
	busesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "depotref", Value: 1},
				{Key: "status", Value: 1},
			},
		},
	}

	opts = options.CreateIndexes()
	_, err = busesCollection.Indexes().CreateMany(context.Background(), busesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	staffCollection := GetCollection("staff")
	staffIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "depotref", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = staffCollection.Indexes().CreateMany(context.Background(), staffIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	depotsCollection := GetCollection("depots")
	depotsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = depotsCollection.Indexes().CreateMany(context.Background(), depotsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createTripsIndexes() {
	tripsCollection := GetCollection("trips")
	tripIdentityIndexName := "TripIdentity"
	_, err := tripsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Identity key for generated trips - makes horizon reruns idempotent
			Options: options.Index().SetName(tripIdentityIndexName).SetUnique(true),
			Keys: bson.D{
				{Key: "routeref", Value: 1},
				{Key: "busref", Value: 1},
				{Key: "servicedate", Value: 1},
				{Key: "starttime", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "servicedate", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "routeref", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "depotref", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
