package tenant

import (
	"time"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
)

// seedTenants returns the tenant directory the service starts with. In
// production these records would come from a backing directory service;
// here they are the fixed demo deployment.
func seedTenants() []model.Tenant {
	seededAt := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	return []model.Tenant{
		{
			ID:             "male-tenant",
			Subdomain:      "male",
			Name:           "Male Portal",
			Logo:           "👨‍💼",
			PrimaryColor:   "hsl(220, 100%, 50%)",
			SecondaryColor: "hsl(220, 50%, 80%)",
			Active:         true,
			CreatedAt:      seededAt,
			Settings: model.TenantSettings{
				AllowRegistration: true,
				MaxUsers:          100,
				RecordingsEnabled: true,
				CustomBranding:    true,
				AllowGuestAccess:  false,
			},
		},
		{
			ID:             "female-tenant",
			Subdomain:      "female",
			Name:           "Female Portal",
			Logo:           "👩‍💻",
			PrimaryColor:   "hsl(300, 100%, 50%)",
			SecondaryColor: "hsl(300, 50%, 80%)",
			Active:         true,
			CreatedAt:      seededAt,
			Settings: model.TenantSettings{
				AllowRegistration: true,
				MaxUsers:          100,
				RecordingsEnabled: true,
				CustomBranding:    true,
				AllowGuestAccess:  false,
			},
		},
		{
			ID:             "admin-tenant",
			Subdomain:      model.AdminSubdomain,
			Name:           "Admin Portal",
			Logo:           "⚙️",
			PrimaryColor:   "hsl(0, 0%, 20%)",
			SecondaryColor: "hsl(0, 0%, 60%)",
			Active:         true,
			CreatedAt:      seededAt,
			Settings: model.TenantSettings{
				AllowRegistration: false,
				MaxUsers:          10,
				RecordingsEnabled: true,
				CustomBranding:    false,
				AllowGuestAccess:  false,
			},
		},
	}
}
