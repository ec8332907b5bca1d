// Package app provides authentication initialization.
package app

import (
	"context"
	"time"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// initializeDefaultRolesAndPermissions creates default roles and permissions if they don't exist.
func initializeDefaultRolesAndPermissions(
	roleRepo repository.RoleRepositoryInterface,
	permissionRepo repository.PermissionRepositoryInterface,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Create default permissions
	permissions := []*model.Permission{
		{Name: "products:read", Description: "Read catalog and stock", Resource: "products", Action: "read", Active: true},
		{Name: "products:write", Description: "Create/update products, categories and stock", Resource: "products", Action: "write", Active: true},
		{Name: "sales:read", Description: "Read store-wide sales and metrics", Resource: "sales", Action: "read", Active: true},
		{Name: "sales:write", Description: "Finalize and cancel sales", Resource: "sales", Action: "write", Active: true},
		{Name: "closings:read", Description: "Read daily closings", Resource: "closings", Action: "read", Active: true},
		{Name: "closings:write", Description: "Run daily closings", Resource: "closings", Action: "write", Active: true},
		{Name: "users:read", Description: "Read users", Resource: "users", Action: "read", Active: true},
		{Name: "users:write", Description: "Create/update users", Resource: "users", Action: "write", Active: true},
		{Name: "users:delete", Description: "Delete users", Resource: "users", Action: "delete", Active: true},
		{Name: "roles:read", Description: "Read roles", Resource: "roles", Action: "read", Active: true},
		{Name: "roles:write", Description: "Create/update roles", Resource: "roles", Action: "write", Active: true},
	}

	permissionIDs := make([]string, 0, len(permissions))
	permissionIDsByName := make(map[string]string, len(permissions))
	for _, perm := range permissions {
		existing, _ := permissionRepo.FindByResourceAndAction(ctx, perm.Resource, perm.Action)
		if existing == nil {
			if err := permissionRepo.Create(ctx, perm); err != nil {
				log.Warn().Err(err).Str("permission", perm.Name).Msg("Failed to create permission")
				continue
			}
			log.Info().Str("permission", perm.Name).Msg("Created default permission")
		} else {
			perm.ID = existing.ID
		}
		permissionIDs = append(permissionIDs, perm.ID.Hex())
		permissionIDsByName[perm.Name] = perm.ID.Hex()
	}

	// Grants are looked up by name so a failed permission create drops
	// the grant instead of shifting every later one.
	sellerPermissions := make([]string, 0, 2)
	for _, name := range []string{"products:read", "sales:write"} {
		if id, ok := permissionIDsByName[name]; ok {
			sellerPermissions = append(sellerPermissions, id)
		}
	}

	// Create default roles. Sellers work the register: catalog reads,
	// sales, and their own metrics. Closings and store-wide reporting
	// stay with admin.
	roles := []*model.Role{
		{
			Name:        "vendedor",
			Description: "Seller role for register operation",
			Permissions: sellerPermissions,
			Active:      true,
		},
		{
			Name:        "admin",
			Description: "Administrator role with full access",
			Permissions: permissionIDs, // All permissions
			Active:      true,
		},
	}

	for _, role := range roles {
		existing, _ := roleRepo.FindByName(ctx, role.Name)
		if existing == nil {
			if err := roleRepo.Create(ctx, role); err != nil {
				log.Warn().Err(err).Str("role", role.Name).Msg("Failed to create role")
			} else {
				log.Info().Str("role", role.Name).Msg("Created default role")
			}
		}
	}

	return nil
}
