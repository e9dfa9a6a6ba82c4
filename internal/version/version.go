package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/craftec/rpbuilder/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/craftec/rpbuilder/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/craftec/rpbuilder/internal/version.Date={{.Date}}
)
