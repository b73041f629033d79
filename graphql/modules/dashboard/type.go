// Package dashboard defines the GraphQL types for the application dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"
)

// CVEType represents one stored vulnerability record
var CVEType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CVE",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"published":   &graphql.Field{Type: graphql.String},
		"status":      &graphql.Field{Type: graphql.String},
		"severity":    &graphql.Field{Type: graphql.String},
		"source":      &graphql.Field{Type: graphql.String},
	},
})

// SourceType represents one stored source record
var SourceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Source",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.String},
		"name":    &graphql.Field{Type: graphql.String},
		"contact": &graphql.Field{Type: graphql.String},
	},
})

// CountBucketType represents one group key with its record count
var CountBucketType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CountBucket",
	Fields: graphql.Fields{
		"value": &graphql.Field{Type: graphql.String},
		"count": &graphql.Field{Type: graphql.Int},
	},
})

// SummaryType represents the aggregate counts for the dashboard cards
var SummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Summary",
	Fields: graphql.Fields{
		"total_cves":  &graphql.Field{Type: graphql.Int},
		"by_severity": &graphql.Field{Type: graphql.NewList(CountBucketType)},
		"by_status":   &graphql.Field{Type: graphql.NewList(CountBucketType)},
	},
})
