package cfg

import "time"

type Cfg struct {
	// Storage
	DBPath  string
	DataDir string

	// HTTP server
	Port        string
	BaseUrl     string
	CORSOrigins []string

	// Authentication
	JWTSecret string
	TokenTTL  time.Duration

	// Bootstrap administrator used by init-data
	AdminEmail    string
	AdminUsername string
	AdminLastName string
	AdminPassword string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
