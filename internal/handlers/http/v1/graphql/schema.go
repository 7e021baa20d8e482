package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
)

var DateTime = graphql.NewScalar(
	graphql.ScalarConfig{
		Name:        "DateTime",
		Description: "DateTime scalar type",
		Serialize: func(value interface{}) interface{} {
			switch v := value.(type) {
			case time.Time:
				return v.Format(time.RFC3339)
			case *time.Time:
				return v.Format(time.RFC3339)
			default:
				return nil
			}
		},
	},
)

func (gh *gqlHandler) initSchema() error {
	boardSummaryType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "BoardSummary",
			Fields: graphql.Fields{
				"id":          &graphql.Field{Type: graphql.ID},
				"title":       &graphql.Field{Type: graphql.String},
				"createdAt":   &graphql.Field{Type: DateTime, Resolve: resolveCreatedAt},
				"columnCount": &graphql.Field{Type: graphql.Int, Resolve: resolveColumnCount},
				"taskCount":   &graphql.Field{Type: graphql.Int, Resolve: resolveTaskCount},
			},
		},
	)

	queryType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"board":  getBoardQuery(gh, boardSummaryType),
				"boards": getBoardsQuery(gh, boardSummaryType),
			},
		},
	)

	schemaConfig := graphql.SchemaConfig{
		Query: queryType,
	}

	schema, err := graphql.NewSchema(schemaConfig)
	if err != nil {
		return err
	}
	gh.schema = schema

	return nil
}
