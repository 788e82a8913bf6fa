// Package models declares the trade desk's entity schemas.
//
// Records are untyped maps validated against these schemas; the schemas
// (not Go structs) are the source of truth for what the API accepts and
// returns.
package models

import (
	"fmt"
	"sort"

	"github.com/guttosm/tradedesk/internal/schema"
)

// Enum and entity names used across the catalog.
const (
	EnumDegreeType = "degree_type"

	EntityDegree = "Degree"
	EntityUser   = "User"
	EntityTrade  = "Trade"
	EntityPage   = "Page"
)

// Catalog bundles the enum registry and every entity schema. It is built
// once at startup and read-only afterwards.
type Catalog struct {
	Enums  *schema.Registry
	Degree *schema.EntitySchema
	User   *schema.EntitySchema
	Trade  *schema.EntitySchema
	Page   *schema.EntitySchema

	byName map[string]*schema.EntitySchema
}

// NewCatalog builds the schemas and checks every enum reference.
//
// Returns:
//   - *Catalog: ready for use by validators and enforcers.
//   - error: any construction failure. Callers treat it as fatal.
func NewCatalog() (*Catalog, error) {
	degreeType, err := schema.NewEnum(EnumDegreeType, "newbie", "expert")
	if err != nil {
		return nil, err
	}
	enums, err := schema.NewRegistry(degreeType)
	if err != nil {
		return nil, err
	}

	degree, err := schema.NewEntity(EntityDegree,
		schema.Int("id"),
		schema.DateTime("created_at"),
		schema.Enum("type_degree", EnumDegreeType),
	)
	if err != nil {
		return nil, err
	}
	user, err := schema.NewEntity(EntityUser,
		schema.Int("id"),
		schema.String("role"),
		schema.String("name"),
		schema.List("degree", degree).OrDefault([]any{}),
	)
	if err != nil {
		return nil, err
	}
	trade, err := schema.NewEntity(EntityTrade,
		schema.Int("id"),
		schema.Int("user_id"),
		schema.String("currency").With(schema.MaxLength(5)),
		schema.String("side"),
		schema.Float("price").With(schema.Min(0)),
		schema.Float("amount"),
	)
	if err != nil {
		return nil, err
	}
	page, err := schema.NewEntity(EntityPage,
		schema.Int("offset").OrDefault(0),
		schema.Int("limit").OrDefault(1),
	)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		Enums:  enums,
		Degree: degree,
		User:   user,
		Trade:  trade,
		Page:   page,
		byName: map[string]*schema.EntitySchema{},
	}
	for _, e := range []*schema.EntitySchema{degree, user, trade, page} {
		if err := enums.Check(e); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		c.byName[e.Name()] = e
	}
	return c, nil
}

// MustCatalog is NewCatalog for package-level and test setup.
func MustCatalog() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Entity looks a schema up by its name ("User", "Trade", ...).
func (c *Catalog) Entity(name string) (*schema.EntitySchema, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Names lists the entity names in lexical order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.byName))
	for n := range c.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
