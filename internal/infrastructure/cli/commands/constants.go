package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

// annotationNoContainer marks commands that run without config, logging or
// storage.
const annotationNoContainer = "termnamer/no-container"

// NeedsContainer reports whether cmd requires the dependency container.
func NeedsContainer(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return cmd.Annotations[annotationNoContainer] != "true"
}

func standalone() map[string]string {
	return map[string]string{annotationNoContainer: "true"}
}

// Errors returned when a container dependency is missing or input is incomplete.
var (
	ErrConfigLoaderUnavailable  = errors.New("config loader unavailable")
	ErrDoctorServiceUnavailable = errors.New("doctor service unavailable")
	ErrCacheUnavailable         = errors.New("name cache unavailable")
	ErrMeterUnavailable         = errors.New("usage meter unavailable")
	ErrKeyRequired              = errors.New("--key is required")
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoCachedNames            = "No cached names."
	MsgNoUsage                  = "No usage recorded yet."
	MsgUsageReset               = "Usage statistics reset."
)

// TimestampFormat is used for human-readable timestamps.
const TimestampFormat = "2006-01-02 15:04:05"
