package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// buildSchema creates the read-only GraphQL schema over projects and
// session state.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	projectType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"slug":            &graphql.Field{Type: graphql.String},
			"name":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"address":         &graphql.Field{Type: graphql.String},
			"cover_image_url": &graphql.Field{Type: graphql.String},
			"latitude":        &graphql.Field{Type: graphql.Float},
			"longitude":       &graphql.Field{Type: graphql.Float},
			"created_at": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if pr, ok := p.Source.(domain.Project); ok {
						return pr.CreatedAt.Format(time.RFC3339), nil
					}
					return nil, nil
				},
			},
		},
	})

	sessionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Session",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"focus_mode":         &graphql.Field{Type: graphql.Boolean},
			"focused_project_id": &graphql.Field{Type: graphql.String},
			"drawer_open":        &graphql.Field{Type: graphql.Boolean},
			"selected_id":        &graphql.Field{Type: graphql.String},
			"no_results":         &graphql.Field{Type: graphql.Boolean},
			"visible":            &graphql.Field{Type: graphql.NewList(projectType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"projects": &graphql.Field{
				Type:        graphql.NewList(projectType),
				Description: "List all projects",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Projects.List(p.Context)
				},
			},
			"project": &graphql.Field{
				Type:        projectType,
				Description: "Get a project by id or slug",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pr, err := deps.Projects.GetByID(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					return *pr, nil
				},
			},
			"projectsInBounds": &graphql.Field{
				Type:        graphql.NewList(projectType),
				Description: "Projects located inside a bounding box",
				Args: graphql.FieldConfigArgument{
					"south": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"west":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"north": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"east":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Projects.InBounds(p.Context, domain.Bounds{
						South: p.Args["south"].(float64),
						West:  p.Args["west"].(float64),
						North: p.Args["north"].(float64),
						East:  p.Args["east"].(float64),
					})
				},
			},
			"session": &graphql.Field{
				Type:        sessionType,
				Description: "A live map session and its visible projects",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, err := deps.Sessions.Get(p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					snap := s.Snapshot()
					return map[string]interface{}{
						"id":                 snap.ID,
						"focus_mode":         snap.FocusMode,
						"focused_project_id": snap.FocusedProjectID,
						"drawer_open":        snap.Drawer.Open,
						"selected_id":        snap.Drawer.SelectedID,
						"no_results":         snap.NoResults,
						"visible":            snap.Drawer.Projects,
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
