package compileinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
)

type CompileInfo struct {
	Tool       string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.GoVersion == "" {
		return fmt.Sprintf("This %s binary carries no build information.", c.Tool)
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	commit := ""
	if c.Commit != "" {
		commit = fmt.Sprintf(" at commit %s (%s)", c.Commit, c.CommitTime)
	}

	return fmt.Sprintf("This %s binary (%s %s) was built with %s%s.%s", c.Tool, c.Module, c.Version, c.GoVersion, commit, mod)
}

// Get reads the build information embedded in the running binary.
func Get() CompileInfo {
	out := CompileInfo{Tool: filepath.Base(os.Args[0])}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Module = z.Main.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the build information of the running binary to w.
func Fprint(w io.Writer) {
	fmt.Fprintf(w, "%s\n", Get())
}
