// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the control endpoint of a running
// routine and detects the local actor (hostname/username) sent with requests.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
