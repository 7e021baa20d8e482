package graphql

import (
	"strconv"

	"github.com/gfdmit/kanban/internal/service"
	"github.com/graphql-go/graphql"
)

func getBoardQuery(gh *gqlHandler, boardSummaryType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: boardSummaryType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := strconv.ParseInt(p.Args["id"].(string), 10, 64)
			if err != nil {
				return nil, err
			}
			return gh.svc.BoardSummary(p.Context, id)
		},
	}
}

func getBoardsQuery(gh *gqlHandler, boardSummaryType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(boardSummaryType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return gh.svc.BoardSummaries(p.Context)
		},
	}
}

func resolveCreatedAt(p graphql.ResolveParams) (interface{}, error) {
	switch s := p.Source.(type) {
	case *service.BoardSummary:
		return s.CreatedAt, nil
	case service.BoardSummary:
		return s.CreatedAt, nil
	}
	return nil, nil
}

func resolveColumnCount(p graphql.ResolveParams) (interface{}, error) {
	switch s := p.Source.(type) {
	case *service.BoardSummary:
		return s.ColumnCount, nil
	case service.BoardSummary:
		return s.ColumnCount, nil
	}
	return nil, nil
}

func resolveTaskCount(p graphql.ResolveParams) (interface{}, error) {
	switch s := p.Source.(type) {
	case *service.BoardSummary:
		return s.TaskCount, nil
	case service.BoardSummary:
		return s.TaskCount, nil
	}
	return nil, nil
}
