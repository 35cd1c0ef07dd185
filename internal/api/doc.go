// Package api provides an HTTP client for the Voltaserve console API.
//
// # Overview
//
// This package defines the API client used by the rest of the application to
// talk to a Voltaserve deployment. It handles HTTP communication, JSON
// serialization, pagination envelopes, and a small error taxonomy that the
// store layer keys off.
//
// # Architecture
//
// The package is split by resource:
//
//   - client.go: transport, pagination envelope, and request plumbing
//   - errors.go: the Error type, its kinds, and batch operation errors
//   - file.go, workspace.go, organization.go, group.go, invitation.go,
//     task.go, user.go, sharing.go: typed endpoints per resource
//
// # Client Usage
//
// Create a client from the configured API root and access key:
//
//	client, err := api.NewClient(api.Config{
//		BaseURL:   "https://console.example.com",
//		AccessKey: key,
//	})
//	if err != nil {
//		log.Fatal().Err(err).Msg("failed to create client")
//	}
//
//	page, err := client.ListWorkspaces(ctx, api.ListOptions{Page: 1, Size: 50})
//	if err != nil {
//		log.Debug().Err(err).Msg("workspace fetch failed")
//	}
//
// # Pagination
//
// Every list endpoint returns the List envelope (data plus totals) and has a
// probe sibling that returns the totals alone. Pages are 1-based. Structured
// filters, such as the file search query, travel base64url-encoded in the
// query string.
//
// # Errors
//
// Requests that fail return *Error. The Kind field separates transport
// failures, credential rejections, server faults, and local validation so
// callers can branch with the IsNetwork, IsAuth, IsServer, and IsValidation
// helpers. Batch endpoints return *BatchError when only part of the batch
// succeeded.
package api
