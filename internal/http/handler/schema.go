package handler

import (
	"net/http"

	"basegraph.app/tenancy/internal/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
)

// SchemaHandler serves JSON Schemas for every request body the API accepts.
type SchemaHandler struct {
	schemas map[string]*jsonschema.Schema
}

func NewSchemaHandler() *SchemaHandler {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return &SchemaHandler{schemas: map[string]*jsonschema.Schema{
		"login":               reflector.Reflect(&dto.LoginRequest{}),
		"create_user":         reflector.Reflect(&dto.CreateUserRequest{}),
		"create_organization": reflector.Reflect(&dto.CreateOrganizationRequest{}),
		"update_organization": reflector.Reflect(&dto.UpdateOrganizationRequest{}),
		"add_membership":      reflector.Reflect(&dto.AddMembershipRequest{}),
	}}
}

func (h *SchemaHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.schemas)
}

func (h *SchemaHandler) Get(c *gin.Context) {
	schema, ok := h.schemas[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown schema"})
		return
	}
	c.JSON(http.StatusOK, schema)
}
