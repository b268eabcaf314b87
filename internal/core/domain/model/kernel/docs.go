// Package kernel holds value objects shared by every aggregate: identifiers and coverage zones.
package kernel
