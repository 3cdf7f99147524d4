// Package api embeds the OpenAPI document served and enforced by the HTTP
// adapter.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var document []byte

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string { return string(d) }

var registerOnce sync.Once

// RegisterSwagger publishes doc as the swag instance read by the swagger UI.
// Only the first call registers.
func RegisterSwagger(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc(raw))
	})
	return nil
}
