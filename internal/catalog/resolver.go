// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
)

// Resolver fetches the values of one attribute kind for one entity.
type Resolver struct {
	querier Querier
}

// NewResolver constructs a [Resolver] on top of querier.
func NewResolver(querier Querier) *Resolver {
	return &Resolver{querier: querier}
}

/*
Resolve returns the values of kind attached to id, in result order.

Description: Kinds outside the closed set resolve to an empty sequence without
touching the endpoint. Values with no English label get one derived from their
identifier, since many linked entities in the graph carry no label at all.

Parameters:
  - context: context.Context
  - id: EntityID (The entity whose relation is read)
  - kind: AttributeKind (Which relation to read)

Returns:
  - []Attribute: Resolved values; nil when there are none
  - error: Endpoint failures only
*/
func (resolver *Resolver) Resolve(context context.Context, id EntityID, kind AttributeKind) ([]Attribute, error) {
	if !kind.Valid() {
		return nil, nil
	}

	rows, err := resolver.querier.Execute(context, BuildAttributeQuery(id, kind))
	if err != nil {
		return nil, fmt.Errorf("catalog: resolve %s of %s: %w", kind, id, err)
	}

	var attributes []Attribute
	for _, row := range rows {
		identifier, ok := row.Get(kind.uriVar())
		if !ok {
			continue
		}

		label, ok := row.Get(kind.labelVar())
		if !ok || label == "" {
			label = LabelFromIdentifier(identifier)
		}

		attributes = append(attributes, Attribute{ID: identifier, Label: label})
	}

	return attributes, nil
}
