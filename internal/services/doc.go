// Package services defines the shared error taxonomy for remote-facing
// components. Subpackages implement individual service clients.
package services
