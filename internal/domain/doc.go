// Package domain contains the core entities and value objects for labelwatch.
//
// This package has no dependencies on infrastructure concerns (file system
// watching, subprocesses, logging) and contains only the rules that decide
// how label files become print jobs.
//
// # Entities
//
//   - [WatchedFile]: A label image observed in the watch folder
//   - [GroupKey]: The print group a file belongs to, derived from its name
//   - [PrintJob]: One invocation of the external print command
//   - [PrintResult]: The classified outcome of a print attempt
//
// # Design Principles
//
// Domain values are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
