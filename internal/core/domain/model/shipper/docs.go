// Package shipper models field agents: their duty roster (Assignment), the profiles they work
// under (Profile) and the reminder tasks they receive for orders (Task).
package shipper
