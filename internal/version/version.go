// Package version carries build metadata, set with
// -ldflags "-X snpscan/internal/version.Version=v1.2.3".
package version

var (
	Version = "dev"
	Commit  = ""
)

// String renders "v1.2.3 (abc1234)" or just the version.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
