// Package kernel provides the value objects shared by every marketplace
// aggregate: UUID identifiers and Money amounts in minor units.
package kernel
