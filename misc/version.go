// Package misc keeps build time information.
package misc

// These are set by the linker at build time.
var (
	appName = "fcss"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
