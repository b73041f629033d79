// Package graphql assembles the root schema for the dashboard query surface.
package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/h108777/ThreatMap/graphql/modules/dashboard"
)

// CreateSchema builds the root query schema over the given store and
// aggregation service.
func CreateSchema(store dashboard.Store, svc dashboard.Summarizer) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: dashboard.GetQueryFields(store, svc),
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
