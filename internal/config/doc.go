// Package config manages stacktrack process configuration.
//
// Everything is read from environment variables:
//   - GitHub token and API endpoint
//   - Location of the graph file
//   - Log file location and rotation
//   - The operation marker inherited from a parent stacktrack process
package config
