// ABOUTME: Version constants for the voxstream player
// ABOUTME: Reported in logs and source handshakes
package version

const (
	// Version is the player version.
	Version = "0.1.0"

	// Product is the product name.
	Product = "Voxstream Player"

	// Manufacturer identifies the project.
	Manufacturer = "Voxstream"
)
