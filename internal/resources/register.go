// Package resources exposes a fixed catalog of Flux query templates as MCP
// resources under flux://queries/<slug>. The templates are static text; they
// are never computed per request and never executed by this server.
package resources

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const fluxMIMEType = "application/vnd.flux"

// RegisterQueryResources registers the Flux query template catalog with the
// MCP server. The catalog is built once at startup and is immutable.
func RegisterQueryResources(s *server.MCPServer) {
	for _, tmpl := range queryTemplates {
		uri := "flux://queries/" + tmpl.Slug
		resource := mcp.NewResource(uri, tmpl.Title,
			mcp.WithResourceDescription(tmpl.Description),
			mcp.WithMIMEType(fluxMIMEType),
		)

		flux := tmpl.Flux
		s.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      uri,
					MIMEType: fluxMIMEType,
					Text:     flux,
				},
			}, nil
		})
	}
}
