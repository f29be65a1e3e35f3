// Package testutil holds the integration test harness: fixture sources and a
// helper that writes them to a temporary tree and runs the application.
package testutil
