package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the chart service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	placementFields := func() graphql.Fields {
		return graphql.Fields{
			"degree":    &graphql.Field{Type: graphql.Float},
			"sign":      &graphql.Field{Type: graphql.String},
			"nakshatra": &graphql.Field{Type: graphql.String},
		}
	}

	placementType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Placement",
		Fields: placementFields(),
	})

	planetFields := placementFields()
	planetFields["name"] = &graphql.Field{Type: graphql.String}
	planetFields["error"] = &graphql.Field{
		Type:        graphql.String,
		Description: "Set when the body could not be placed",
	}
	planetType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Planet",
		Fields: planetFields,
	})

	fallbackType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Fallback",
		Fields: graphql.Fields{
			"date":   &graphql.Field{Type: graphql.String},
			"time":   &graphql.Field{Type: graphql.String},
			"reason": &graphql.Field{Type: graphql.String},
		},
	})

	chartType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Chart",
		Fields: graphql.Fields{
			"ascendant": &graphql.Field{Type: placementType},
			"planets":   &graphql.Field{Type: graphql.NewList(planetType)},
			"instant":   &graphql.Field{Type: graphql.String},
			"ayanamsa":  &graphql.Field{Type: graphql.Float},
			"fallback":  &graphql.Field{Type: fallbackType},
			"degraded": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, _ := p.Source.(map[string]interface{})
					return m["fallback"] != nil, nil
				},
			},
		},
	})

	requestType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ChartRequest",
		Fields: graphql.Fields{
			"date":      &graphql.Field{Type: graphql.String},
			"time":      &graphql.Field{Type: graphql.String},
			"zone":      &graphql.Field{Type: graphql.String},
			"latitude":  &graphql.Field{Type: graphql.Float},
			"longitude": &graphql.Field{Type: graphql.Float},
		},
	})

	storedChartType := graphql.NewObject(graphql.ObjectConfig{
		Name: "StoredChart",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.String},
			"request":    &graphql.Field{Type: requestType},
			"chart":      &graphql.Field{Type: chartType},
			"created_at": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"chart": &graphql.Field{
				Type:        chartType,
				Description: "Compute a sidereal natal chart without storing it",
				Args: graphql.FieldConfigArgument{
					"date": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"time": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"zone": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"lat":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := domain.ChartRequest{
						Date: p.Args["date"].(string),
						Time: p.Args["time"].(string),
						Zone: p.Args["zone"].(string),
						Observer: domain.Observer{
							Latitude:  p.Args["lat"].(float64),
							Longitude: p.Args["lon"].(float64),
						},
					}
					chart, err := deps.Charts.Compute(p.Context, req)
					if err != nil {
						return nil, err
					}
					return toGraph(chart)
				},
			},
			"storedChart": &graphql.Field{
				Type:        storedChartType,
				Description: "Get a stored chart by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rec, err := deps.Charts.Get(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					return toGraph(rec)
				},
			},
			"charts": &graphql.Field{
				Type:        graphql.NewList(storedChartType),
				Description: "List stored charts, newest first",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: defaultPageLimit},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					recs, _, err := deps.Charts.List(p.Context, p.Args["offset"].(int), p.Args["limit"].(int))
					if err != nil {
						return nil, err
					}
					return toGraph(recs)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// toGraph converts a value to the generic shape graphql-go resolves fields
// from, going through its JSON encoding so custom marshalers apply.
func toGraph(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GraphQLHandler serves POST /graphql.
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
