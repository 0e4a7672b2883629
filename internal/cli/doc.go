// Package cli turns the novagraph command line into a validated app.Config.
// Usage errors come back as *ExitError carrying the process exit code; a help
// request is reported through the second return value of Parse.
package cli
