package auth

import "github.com/shoppingk/jitsi-session-keeper/internal/model"

// seedUsers returns the per-tenant user tables keyed by tenant subdomain.
// Passwords are plaintext demo credentials; the whole table is advisory-only
// security, not a real credential store.
func seedUsers() map[string][]model.SeededUser {
	return map[string][]model.SeededUser{
		"male": {
			{
				User:     model.User{ID: "male-admin-1", Username: "admin", Role: model.RoleAdmin, Avatar: "👨‍💼"},
				Password: "admin123",
			},
			{
				User:     model.User{ID: "male-user-1", Username: "john", Role: model.RoleUser, Avatar: "👤"},
				Password: "user123",
			},
			{
				User:     model.User{ID: "male-user-2", Username: "mike", Role: model.RoleUser, Avatar: "👨‍💻"},
				Password: "user123",
			},
		},
		"female": {
			{
				User:     model.User{ID: "female-admin-1", Username: "admin", Role: model.RoleAdmin, Avatar: "👩‍💼"},
				Password: "admin123",
			},
			{
				User:     model.User{ID: "female-user-1", Username: "sarah", Role: model.RoleUser, Avatar: "👩"},
				Password: "user123",
			},
			{
				User:     model.User{ID: "female-user-2", Username: "jane", Role: model.RoleUser, Avatar: "👩‍💻"},
				Password: "user123",
			},
		},
		model.AdminSubdomain: {
			{
				User:     model.User{ID: "super-admin-1", Username: "superadmin", Role: model.RoleAdmin, Avatar: "🔧"},
				Password: "super123",
			},
		},
	}
}
