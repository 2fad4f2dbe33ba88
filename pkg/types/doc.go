// Package types defines the TiffinCRM entities, the repository and Store
// interfaces that storage backends implement, and the error kinds shared by
// the service, API, and client layers.
package types
