// Package build provides domain entities for build information.
package build

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// String renders the one-line version banner.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	if i.Commit != "" && i.Commit != "unknown" {
		v += " (" + i.Commit + ")"
	}
	return v
}

// RepoURL returns the project repository URL.
func RepoURL() string {
	return "https://github.com/bnema/bilishell"
}
