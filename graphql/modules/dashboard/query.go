// Package dashboard defines the GraphQL queries for the dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(store Store, svc Summarizer) graphql.Fields {
	return graphql.Fields{
		// Top cards: total count plus severity and status breakdowns
		"summary": &graphql.Field{
			Type: SummaryType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveSummary(p.Context, svc)
			},
		},
		// Raw vulnerability table
		"cves": &graphql.Field{
			Type: graphql.NewList(CVEType),
			Args: graphql.FieldConfigArgument{
				"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit := p.Args["limit"].(int)
				return ResolveCVEs(p.Context, store, limit)
			},
		},
		// Source directory table
		"sources": &graphql.Field{
			Type: graphql.NewList(SourceType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveSources(p.Context, store)
			},
		},
	}
}
