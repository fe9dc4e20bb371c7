package utils

import "github.com/taskify/taskify-api/models"

// CanAccessResource decides owner-scoped access: the owner always may,
// anyone holding the Admin role may, nobody else.
func CanAccessResource(roles []string, ownerID, userID string) bool {
	if ownerID == userID {
		return true
	}
	for _, r := range roles {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}
