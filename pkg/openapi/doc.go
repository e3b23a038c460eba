// Package openapi exposes the OpenAPI adapter contracts. Operations become
// schema entries keyed by operationId, holding the operation's request body
// schema. The kin-openapi backed parser lives under internal/openapi so
// consumers do not depend on it directly.
package openapi
